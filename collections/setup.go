// Package collections creates the PocketBase collections the app needs.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup ensures the bills collection exists. A bill record stores the
// upload configuration, a few list-page figures and the full canonical
// result as JSON so document downloads never recompute anything.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "bills", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "title", Required: true})
		c.Fields.Add(&core.NumberField{Name: "premium_percent"})
		c.Fields.Add(&core.SelectField{
			Name:      "premium_sign",
			Required:  true,
			Values:    []string{"above", "below"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "grand_total"})
		c.Fields.Add(&core.TextField{Name: "net_payable"})
		c.Fields.Add(&core.NumberField{Name: "anomaly_count"})
		c.Fields.Add(&core.JSONField{Name: "payload", MaxSize: 5 << 20})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it
// does, the existing collection is returned. Otherwise a new base
// collection is created, addFields populates it, and it is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
