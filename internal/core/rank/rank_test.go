package rank

import "testing"

type pub struct {
	name   string
	points float64
}

func TestBy_Descending(t *testing.T) {
	pubs := []pub{
		{"low", 10},
		{"high", 30},
		{"mid", 20},
	}

	ranked := By(pubs, func(p pub) float64 { return p.points })

	if ranked[0].Item.name != "high" || ranked[0].Rank != 1 {
		t.Errorf("expected high at rank 1, got %s at %d", ranked[0].Item.name, ranked[0].Rank)
	}
	if ranked[1].Item.name != "mid" || ranked[1].Rank != 2 {
		t.Errorf("expected mid at rank 2, got %s at %d", ranked[1].Item.name, ranked[1].Rank)
	}
	if ranked[2].Item.name != "low" || ranked[2].Rank != 3 {
		t.Errorf("expected low at rank 3, got %s at %d", ranked[2].Item.name, ranked[2].Rank)
	}
}

func TestBy_TiesShareRankAndSkipOrdinals(t *testing.T) {
	pubs := []pub{
		{"a", 30},
		{"b", 30},
		{"c", 10},
	}

	ranked := By(pubs, func(p pub) float64 { return p.points })

	if ranked[0].Rank != 1 || ranked[1].Rank != 1 {
		t.Errorf("expected both leaders at rank 1, got %d and %d", ranked[0].Rank, ranked[1].Rank)
	}
	if ranked[2].Rank != 3 {
		t.Errorf("expected third item at rank 3, got %d", ranked[2].Rank)
	}
}

func TestBy_StableForEqualKeys(t *testing.T) {
	pubs := []pub{
		{"first", 20},
		{"second", 20},
	}

	ranked := By(pubs, func(p pub) float64 { return p.points })

	if ranked[0].Item.name != "first" {
		t.Errorf("expected stable order for tied items, got %s first", ranked[0].Item.name)
	}
}

func TestByAscending(t *testing.T) {
	dates := []string{"2024-09-01", "2024-06-01", "2024-06-01"}

	ranked := ByAscending(dates, func(s string) string { return s })

	if ranked[0].Item != "2024-06-01" || ranked[0].Rank != 1 {
		t.Errorf("expected earliest date at rank 1, got %s at %d", ranked[0].Item, ranked[0].Rank)
	}
	if ranked[1].Rank != 1 {
		t.Errorf("expected tie at rank 1, got %d", ranked[1].Rank)
	}
	if ranked[2].Item != "2024-09-01" || ranked[2].Rank != 3 {
		t.Errorf("expected latest date at rank 3, got %s at %d", ranked[2].Item, ranked[2].Rank)
	}
}

func TestTied(t *testing.T) {
	pubs := []pub{
		{"a", 30},
		{"b", 30},
		{"c", 10},
	}
	ranked := By(pubs, func(p pub) float64 { return p.points })

	if !Tied(ranked, 1) {
		t.Error("expected rank 1 to be tied")
	}
	if Tied(ranked, 3) {
		t.Error("expected rank 3 not to be tied")
	}
}

func TestBy_Empty(t *testing.T) {
	ranked := By(nil, func(p pub) float64 { return p.points })
	if len(ranked) != 0 {
		t.Errorf("expected empty result, got %d items", len(ranked))
	}
}
