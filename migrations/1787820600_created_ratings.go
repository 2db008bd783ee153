package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		events, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("ratings")

		collection.Fields.Add(
			&core.TextField{
				Name:     "name",
				Required: true,
				Max:      255,
			},
			&core.TextField{
				Name: "review",
				Max:  2000,
			},
			&core.RelationField{
				Name:         "event_id",
				Required:     true,
				CollectionId: events.Id,
				MaxSelect:    1,
			},
			&core.NumberField{
				Name:     "rating_star",
				Required: true,
				Min:      types.Pointer(1.0),
				Max:      types.Pointer(5.0),
				OnlyInt:  true,
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

		collection.AddIndex("idx_ratings_event_id", false, "event_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("ratings")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
