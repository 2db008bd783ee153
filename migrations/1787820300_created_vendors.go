package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

func init() {
	m.Register(func(app core.App) error {
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("vendors")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "user_id",
				Required:     true,
				CollectionId: users.Id,
				MaxSelect:    1,
			},
			&core.TextField{
				Name:     "name",
				Required: true,
				Max:      255,
			},
			&core.TextField{
				Name: "description",
				Max:  2000,
			},
			&core.TextField{
				Name:     "phone",
				Required: true,
				Max:      20,
			},
			&core.TextField{
				Name: "instagram",
				Max:  30,
			},
			&core.TextField{
				Name: "location",
				Max:  500,
			},
			&core.EmailField{
				Name: "email",
			},
			&core.FileField{
				Name:      "banner",
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

		// one vendor profile per account
		collection.AddIndex("idx_vendors_user_id", true, "user_id", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("vendors")
		if err != nil {
			return err
		}
		return app.Delete(collection)
	})
}
