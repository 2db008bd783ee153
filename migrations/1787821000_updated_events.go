package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// events and banners reference each other, so the promo_banner side is added
// once both collections exist.
func init() {
	m.Register(func(app core.App) error {
		banners, err := app.FindCollectionByNameOrId("banners")
		if err != nil {
			return err
		}

		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		collection.Fields.Add(
			&core.RelationField{
				Name:         "promo_banner",
				CollectionId: banners.Id,
				MaxSelect:    1,
			},
		)

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("events")
		if err != nil {
			return err
		}

		collection.Fields.RemoveByName("promo_banner")

		return app.Save(collection)
	})
}
