package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		categories, err := app.FindCollectionByNameOrId("event_categories")
		if err != nil {
			return err
		}
		areas, err := app.FindCollectionByNameOrId("areas")
		if err != nil {
			return err
		}
		vendors, err := app.FindCollectionByNameOrId("vendors")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("events")

		collection.Fields.Add(
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
			&core.EditorField{
				Name: "description",
			},
			&core.TextField{
				Name: "category",
				Max:  255,
			},
			&core.RelationField{
				Name:         "category_id",
				Required:     true,
				CollectionId: categories.Id,
				MaxSelect:    1,
			},
			&core.TextField{
				Name: "location",
				Max:  500,
			},
			&core.TextField{
				Name:     "contact",
				Required: true,
				Max:      20,
			},
			&core.DateField{
				Name:     "start_date",
				Required: true,
			},
			&core.DateField{
				Name:     "end_date",
				Required: true,
			},
			&core.NumberField{
				Name:    "booth_slot",
				Min:     types.Pointer(1.0),
				OnlyInt: true,
			},
			&core.RelationField{
				Name:         "area_id",
				CollectionId: areas.Id,
				MaxSelect:    1,
			},
			&core.RelationField{
				Name:         "vendor_id",
				CollectionId: vendors.Id,
				MaxSelect:    1,
			},
			&core.FileField{
				Name:      "banner",
				MaxSelect: 1,
				MaxSize:   5242880,
				MimeTypes: []string{"image/jpeg", "image/png", "image/webp"},
			},
			&core.FileField{
				Name:      "permit",
				MaxSelect: 1,
				MaxSize:   5242880,
				MimeTypes: []string{"image/jpeg", "image/png", "application/pdf"},
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

		collection.AddIndex("idx_events_start_date", false, "start_date", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
