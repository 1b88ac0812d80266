package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
)

// Campaign holds the schema definition for the Campaign entity.
type Campaign struct {
	ent.Schema
}

// Fields of the Campaign.
func (Campaign) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("campaign_id").
			Unique().
			Immutable(),
		field.String("product_name").
			Default(""),
		field.String("product_vibe").
			Default(""),
		field.JSON("platforms", []string{}).
			Default([]string{}),
		field.String("status").
			Default("active"),
		field.Time("created_at").
			Default(time.Now),
	}
}

// Edges of the Campaign.
func (Campaign) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("posts", ScheduledPost.Type),
	}
}
