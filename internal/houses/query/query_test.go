package query

import (
	"househunt/pkg/config"
	"net/url"
	"reflect"
	"regexp"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testConfig = &config.Config{DefaultPageSize: 10, MaxPageSize: 100}

func intPtr(n int) *int { return &n }

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(raw)
	if err != nil {
		t.Fatalf("bad query %q: %v", raw, err)
	}
	return v
}

func TestParse_CityBedroomsPage(t *testing.T) {
	p := Parse(mustQuery(t, "city=aus&bedrooms=2&limit=5&skip=0"), testConfig)

	if p.City != "aus" || p.Bedrooms == nil || *p.Bedrooms != 2 {
		t.Fatalf("unexpected params %+v", p)
	}
	if p.Limit != 5 || p.Skip != 0 {
		t.Errorf("expected limit 5 skip 0, got %d %d", p.Limit, p.Skip)
	}

	want := bson.M{"$and": []bson.M{
		{"bedrooms": 2},
		{"city": primitive.Regex{Pattern: "aus", Options: "i"}},
	}}
	if got := p.Filter(); !reflect.DeepEqual(got, want) {
		t.Errorf("filter mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestParse_MalformedNumbersAreOmitted(t *testing.T) {
	withFoo := Parse(mustQuery(t, "city=aus&bedrooms=foo"), testConfig)
	without := Parse(mustQuery(t, "city=aus"), testConfig)

	if withFoo.Bedrooms != nil {
		t.Fatalf("expected bedrooms to be dropped, got %d", *withFoo.Bedrooms)
	}
	if !reflect.DeepEqual(withFoo.Filter(), without.Filter()) {
		t.Errorf("bedrooms=foo should equal omitting bedrooms: %v vs %v", withFoo.Filter(), without.Filter())
	}

	tests := []string{"bedrooms=2abc", "bathrooms=1.5", "roomSize=big", "rentPerMonth=%20"}
	for _, raw := range tests {
		if got := Parse(mustQuery(t, raw), testConfig).Filter(); len(got) != 0 {
			t.Errorf("%s: expected match-all filter, got %v", raw, got)
		}
	}
}

func TestParse_Pagination(t *testing.T) {
	tests := []struct {
		raw       string
		wantLimit int
		wantSkip  int64
	}{
		{"", 10, 0},
		{"limit=0", 10, 0},
		{"limit=-4", 10, 0},
		{"limit=abc&skip=xyz", 10, 0},
		{"limit=25&skip=50", 25, 50},
		{"limit=500", 100, 0},
		{"limit=100000", 100, 0},
		{"skip=-3", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			p := Parse(mustQuery(t, tt.raw), testConfig)
			if p.Limit != tt.wantLimit || p.Skip != tt.wantSkip {
				t.Errorf("got limit=%d skip=%d, want limit=%d skip=%d", p.Limit, p.Skip, tt.wantLimit, tt.wantSkip)
			}
		})
	}
}

func TestFilter_NoParamsMatchesAll(t *testing.T) {
	if got := Parse(url.Values{}, testConfig).Filter(); len(got) != 0 {
		t.Errorf("expected empty filter, got %v", got)
	}
}

func TestFilter_Search(t *testing.T) {
	numeric := Params{Search: "3"}.Filter()
	want := bson.M{"$or": []bson.M{
		{"city": primitive.Regex{Pattern: "3", Options: "i"}},
		{"bedrooms": 3},
	}}
	if !reflect.DeepEqual(numeric, want) {
		t.Errorf("numeric search mismatch: %v", numeric)
	}

	text := Params{Search: "dhaka"}.Filter()
	or, ok := text["$or"].([]bson.M)
	if !ok || len(or) != 1 {
		t.Fatalf("text search should only match city, got %v", text)
	}
}

func TestFilter_AllFields(t *testing.T) {
	p := Params{
		Bedrooms:     intPtr(2),
		Bathrooms:    intPtr(1),
		City:         "Austin",
		RoomSize:     intPtr(300),
		RentPerMonth: intPtr(1200),
		SelectedDate: "2024-05-01",
	}

	want := []bson.M{
		{"bedrooms": 2},
		{"bathrooms": 1},
		{"city": primitive.Regex{Pattern: "Austin", Options: "i"}},
		{"room_size": bson.M{"$gte": 300}},
		{"rent_per_month": 1200},
		{"date": "2024-05-01"},
	}
	if got := p.Clauses(); !reflect.DeepEqual(got, want) {
		t.Errorf("clauses mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestFilter_QuotesRegexInput(t *testing.T) {
	p := Parse(mustQuery(t, "city="+url.QueryEscape("a.*(")), testConfig)
	clause := p.Clauses()[0]
	re := clause["city"].(primitive.Regex)

	if re.Pattern != regexp.QuoteMeta("a.*(") {
		t.Fatalf("expected quoted pattern, got %q", re.Pattern)
	}
	compiled := regexp.MustCompile("(?i)" + re.Pattern)
	if compiled.MatchString("abc") {
		t.Error("quoted pattern must not behave as a wildcard")
	}
	if !compiled.MatchString("xA.*(y") {
		t.Error("quoted pattern must match the literal text case-insensitively")
	}
}
