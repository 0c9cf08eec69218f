package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Builder composes an ordered sequence of aggregation stages. Stages
// are appended in call order; the caller is responsible for putting
// filters before joins and joins before computed fields.
type Builder struct {
	stages mongo.Pipeline
}

func New() *Builder {
	return &Builder{}
}

// Match appends a filter stage.
func (b *Builder) Match(filter bson.M) *Builder {
	b.stages = append(b.stages, bson.D{{Key: "$match", Value: filter}})
	return b
}

// TextSearch appends a text-index filter stage. Must be the first
// stage of the pipeline.
func (b *Builder) TextSearch(term string) *Builder {
	return b.Match(bson.M{"$text": bson.M{"$search": term}})
}

// Lookup appends a foreign-key join attaching matching documents from
// another collection under as.
func (b *Builder) Lookup(from, localField, foreignField, as string) *Builder {
	b.stages = append(b.stages, bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": foreignField,
		"as":           as,
	}}})
	return b
}

// LookupPipeline is Lookup with a sub-pipeline applied to the joined
// documents, used to project only the needed subfields.
func (b *Builder) LookupPipeline(from, localField, foreignField, as string, sub mongo.Pipeline) *Builder {
	b.stages = append(b.stages, bson.D{{Key: "$lookup", Value: bson.M{
		"from":         from,
		"localField":   localField,
		"foreignField": foreignField,
		"as":           as,
		"pipeline":     sub,
	}}})
	return b
}

// AddFields appends a computed-field stage.
func (b *Builder) AddFields(fields bson.M) *Builder {
	b.stages = append(b.stages, bson.D{{Key: "$addFields", Value: fields}})
	return b
}

// Unwind flattens a joined array to a single embedded document,
// dropping rows where the array is empty.
func (b *Builder) Unwind(path string) *Builder {
	b.stages = append(b.stages, bson.D{{Key: "$unwind", Value: path}})
	return b
}

// Sort appends a prebuilt sort stage (see SortStage).
func (b *Builder) Sort(sort bson.D) *Builder {
	b.stages = append(b.stages, sort)
	return b
}

// Project appends the output field whitelist.
func (b *Builder) Project(spec bson.M) *Builder {
	b.stages = append(b.stages, bson.D{{Key: "$project", Value: spec}})
	return b
}

// Group appends a grouping stage.
func (b *Builder) Group(spec bson.M) *Builder {
	b.stages = append(b.stages, bson.D{{Key: "$group", Value: spec}})
	return b
}

// Pipeline returns the composed stages.
func (b *Builder) Pipeline() mongo.Pipeline {
	return b.stages
}

// sizeOf builds a count expression over a joined array.
func sizeOf(arrayPath string) bson.M {
	return bson.M{"$size": arrayPath}
}

// firstOf collapses a single-element joined array to its element.
func firstOf(arrayPath string) bson.M {
	return bson.M{"$first": arrayPath}
}
