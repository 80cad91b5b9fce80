package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		tickets, err := app.FindCollectionByNameOrId("tickets")
		if err != nil {
			return err
		}

		collection := core.NewBaseCollection("offers")

		collection.Fields.Add(
			&core.RelationField{
				Name:         "ticket",
				Required:     true,
				CollectionId: tickets.Id,
				MaxSelect:    1,
			},
			&core.RelationField{
				Name:         "buyer",
				Required:     true,
				CollectionId: "_pb_users_auth_",
				MaxSelect:    1,
			},
			&core.RelationField{
				Name:         "seller",
				Required:     true,
				CollectionId: "_pb_users_auth_",
				MaxSelect:    1,
			},
			&core.NumberField{
				Name:     "amount",
				Required: true,
				Min:      types.Pointer(0.01),
			},
			&core.TextField{
				Name: "message",
				Max:  2000,
			},
			&core.TextField{
				Name: "reference",
				Max:  16,
			},
			&core.SelectField{
				Name:      "status",
				Required:  true,
				MaxSelect: 1,
				Values:    []string{"pending", "approved", "denied"},
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

		// An offer is private to its two parties.
		collection.ListRule = types.Pointer("buyer = @request.auth.id || seller = @request.auth.id")
		collection.ViewRule = types.Pointer("buyer = @request.auth.id || seller = @request.auth.id")

		collection.AddIndex("idx_offers_ticket", false, "ticket", "")
		collection.AddIndex("idx_offers_buyer", false, "buyer", "")
		collection.AddIndex("idx_offers_seller", false, "seller", "")

		return app.Save(collection)
	}, func(app core.App) error {
		collection, err := app.FindCollectionByNameOrId("offers")
		if err != nil {
			return err
		}

		return app.Delete(collection)
	})
}
