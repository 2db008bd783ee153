package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("booths")

		collection.Fields.Add(
			&core.TextField{
				Name:     "name",
				Required: true,
				Max:      255,
			},
			&core.TextField{
				Name:     "phone",
				Required: true,
				Max:      20,
			},
			&core.TextField{
				Name: "description",
				Max:  2000,
			},
			&core.RelationField{
				Name:         "event_id",
				Required:     true,
				CollectionId: events.Id,
				MaxSelect:    1,
			},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				Values:    []string{"PENDING", "APPROVED", "REJECTED"},
				MaxSelect: 1,
			},
			&core.TextField{
				Name: "admin_note",
				Max:  1000,
			},
			&core.TextField{
				Name:     "ref_code",
				Required: true,
				Max:      16,
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

		collection.AddIndex("idx_booths_ref_code", true, "ref_code", "")
		collection.AddIndex("idx_booths_event_id", false, "event_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("booths")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
