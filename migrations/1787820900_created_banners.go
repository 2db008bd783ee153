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

		collection := core.NewBaseCollection("banners")

		collection.Fields.Add(
			&core.TextField{
				Name: "title",
				Max:  255,
			},
			&core.RelationField{
				Name:         "event_id",
				CollectionId: events.Id,
				MaxSelect:    1,
			},
			&core.FileField{
				Name:      "image",
				Required:  true,
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

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("banners")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
