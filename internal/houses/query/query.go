// Package query turns the /houses query string into a storage filter and page.
package query

import (
	"househunt/pkg/config"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ParamSearch       = "search"
	ParamBedrooms     = "bedrooms"
	ParamBathrooms    = "bathrooms"
	ParamCity         = "city"
	ParamRoomSize     = "roomSize"
	ParamRentPerMonth = "rentPerMonth"
	ParamSelectedDate = "selectedDate"
	ParamLimit        = "limit"
	ParamSkip         = "skip"
)

// Params is the parsed listing query. Nil pointers and empty strings mean the
// filter was not supplied.
type Params struct {
	Search       string
	Bedrooms     *int
	Bathrooms    *int
	City         string
	RoomSize     *int
	RentPerMonth *int
	SelectedDate string
	Limit        int
	Skip         int64
}

// Parse reads the query string. Numeric values that do not parse as integers
// are dropped. limit falls back to cfg.DefaultPageSize when absent or not
// positive and is capped at cfg.MaxPageSize, so limit=100000 returns at most
// MaxPageSize listings. skip falls back to 0 when absent or negative.
func Parse(values url.Values, cfg *config.Config) Params {
	p := Params{
		Search:       strings.TrimSpace(values.Get(ParamSearch)),
		Bedrooms:     parseInt(values.Get(ParamBedrooms)),
		Bathrooms:    parseInt(values.Get(ParamBathrooms)),
		City:         strings.TrimSpace(values.Get(ParamCity)),
		RoomSize:     parseInt(values.Get(ParamRoomSize)),
		RentPerMonth: parseInt(values.Get(ParamRentPerMonth)),
		SelectedDate: strings.TrimSpace(values.Get(ParamSelectedDate)),
	}

	var limit int
	if n := parseInt(values.Get(ParamLimit)); n != nil {
		limit = *n
	}
	p.Limit = cfg.NormalizePageSize(limit)

	var skip int64
	if n := parseInt(values.Get(ParamSkip)); n != nil {
		skip = int64(*n)
	}
	p.Skip = config.NormalizeOffset(skip)

	return p
}

// Filter builds AND(search clause, field clauses). With nothing supplied it
// matches every listing.
func (p Params) Filter() bson.M {
	clauses := p.Clauses()
	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	default:
		return bson.M{"$and": clauses}
	}
}

func (p Params) Clauses() []bson.M {
	var clauses []bson.M

	if p.Search != "" {
		or := []bson.M{{"city": containsFold(p.Search)}}
		if n := parseInt(p.Search); n != nil {
			or = append(or, bson.M{"bedrooms": *n})
		}
		clauses = append(clauses, bson.M{"$or": or})
	}
	if p.Bedrooms != nil {
		clauses = append(clauses, bson.M{"bedrooms": *p.Bedrooms})
	}
	if p.Bathrooms != nil {
		clauses = append(clauses, bson.M{"bathrooms": *p.Bathrooms})
	}
	if p.City != "" {
		clauses = append(clauses, bson.M{"city": containsFold(p.City)})
	}
	if p.RoomSize != nil {
		clauses = append(clauses, bson.M{"room_size": bson.M{"$gte": *p.RoomSize}})
	}
	if p.RentPerMonth != nil {
		clauses = append(clauses, bson.M{"rent_per_month": *p.RentPerMonth})
	}
	if p.SelectedDate != "" {
		clauses = append(clauses, bson.M{"date": p.SelectedDate})
	}

	return clauses
}

// containsFold matches s literally anywhere in the field, ignoring case.
func containsFold(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func parseInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
