package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		rentals, err := app.FindCollectionByNameOrId("rentals")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("rental_products")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "rental_id",
				Required:     true,
				CollectionId: rentals.Id,
				MaxSelect:    1,
			},
			&core.TextField{
				Name:     "name",
				Required: true,
				Max:      255,
			},
			&core.NumberField{
				Name:    "price",
				Min:     types.Pointer(0.0),
				OnlyInt: true,
			},
			&core.FileField{
				Name:      "image",
				MaxSelect: 1,
				MaxSize:   5242880,
				MimeTypes: []string{"image/jpeg", "image/png", "image/webp"},
			},
			&core.AutodateField{
				Name:     "created",
				OnCreate: true,
			},
			&core.AutodateField{
				Name:     "updated",
				OnCreate: true,
				OnUpdate: true,
			},
		)

		collection.AddIndex("idx_rental_products_rental_id", false, "rental_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("rental_products")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
