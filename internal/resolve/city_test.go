package resolve

import "testing"

var servedCities = []string{"תל אביב"}

func TestMentionedCityServed(t *testing.T) {
	got := MentionedCity("יש אדוויל בתל אביב?", servedCities)
	if got != "תל אביב" {
		t.Errorf("expected canonical city, got %q", got)
	}
}

func TestMentionedCityUnserved(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"is advil available in haifa?", "haifa"},
		{"do you have nurofen in jerusalem", "jerusalem"},
		{"יש אקמול בחיפה?", "חיפה"},
		{"האם יש בחיפה?", "חיפה"},
	}
	for _, tt := range tests {
		if got := MentionedCity(tt.text, servedCities); got != tt.want {
			t.Errorf("MentionedCity(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestMentionedCityNoIntent(t *testing.T) {
	// A city-like token without availability intent is not extracted.
	if got := MentionedCity("tell me about haifa", servedCities); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
	if got := MentionedCity("what is the usual paracetamol dose?", servedCities); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
	// "in stock" is an availability idiom, never a city.
	if got := MentionedCity("is advil in stock?", servedCities); got != "" {
		t.Errorf("expected empty for in-stock idiom, got %q", got)
	}
}

func TestCityServed(t *testing.T) {
	if !CityServed("תל אביב", servedCities) {
		t.Error("expected served")
	}
	if CityServed("haifa", servedCities) {
		t.Error("expected unserved")
	}
}
