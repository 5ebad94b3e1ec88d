package services

// RenderItemRow converts a line item to its pre-formatted row, applying
// the render state. This is the only place an item turns into display
// strings; every document consumes the result unchanged.
func RenderItemRow(it LineItem) ItemRow {
	row := ItemRow{
		SerialNo:    it.SerialNo,
		Description: it.Description,
		Remark:      it.Remark,
		State:       it.State(),
	}

	if row.State == SuppressNumeric {
		// Zero-rate rows keep only serial, description and remark.
		return row
	}

	row.Unit = it.Unit
	row.QtyWorkOrder = FormatAmount(it.QtyWorkOrder)
	row.QtyExecuted = FormatAmount(it.QtyExecuted)
	row.Rate = FormatAmount(it.Rate)
	row.AmountWorkOrder = FormatAmount(it.AmountWorkOrder())
	row.AmountExecuted = FormatAmount(it.AmountExecuted())
	return row
}

// RenderItemRows renders a list of items in order.
func RenderItemRows(items []LineItem) []ItemRow {
	rows := make([]ItemRow, len(items))
	for i, it := range items {
		rows[i] = RenderItemRow(it)
	}
	return rows
}
