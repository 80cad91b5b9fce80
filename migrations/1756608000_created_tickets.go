package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		collection := core.NewBaseCollection("tickets")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "user",
				Required:     true,
				CollectionId: "_pb_users_auth_",
				MaxSelect:    1,
			},
			&core.TextField{
				Name:     "event_name",
				Required: true,
				Max:      200,
			},
			&core.DateField{
				Name:     "event_date",
				Required: true,
			},
			&core.TextField{
				Name:     "venue",
				Required: true,
				Max:      200,
			},
			&core.TextField{
				Name: "section",
				Max:  50,
			},
			&core.TextField{
				Name: "row_number",
				Max:  50,
			},
			&core.TextField{
				Name: "seat_numbers",
				Max:  50,
			},
			&core.NumberField{
				Name:     "quantity",
				Required: true,
				Min:      types.Pointer(1.0),
				OnlyInt:  true,
			},
			&core.NumberField{
				Name:     "listed_price",
				Required: true,
				Min:      types.Pointer(0.01),
			},
			&core.TextField{
				Name: "description",
				Max:  2000,
			},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"available", "pending", "sold"},
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

		// Listings are visible to any signed-in user; writes go through the
		// service layer with the superuser app handle.
		collection.ListRule = types.Pointer("@request.auth.id != ''")
		collection.ViewRule = types.Pointer("@request.auth.id != ''")

		collection.AddIndex("idx_tickets_status", false, "status", "")
		collection.AddIndex("idx_tickets_user", false, "user", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("tickets")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
