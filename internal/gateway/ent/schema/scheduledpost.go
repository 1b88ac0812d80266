package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// ScheduledPost holds the schema definition for the ScheduledPost entity.
type ScheduledPost struct {
	ent.Schema
}

// Fields of the ScheduledPost.
func (ScheduledPost) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("job_id").
			Unique().
			Immutable(),
		field.String("campaign_id"),
		field.String("platform_id"),
		field.String("time_of_day"),
		field.Time("next_run_at"),
		field.Time("created_at").
			Default(time.Now),
	}
}

// Edges of the ScheduledPost.
func (ScheduledPost) Edges() []ent.Edge {
	return nil
}
