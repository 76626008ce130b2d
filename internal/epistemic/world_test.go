package epistemic

import "testing"

func testWorld() World {
	return NewWorld("Garchomp_0", "Garchomp",
		[]string{"Earthquake", "Dragon Claw", "Swords Dance", "Scale Shot"},
		map[string]string{"item": "Focus Sash", "ability": "Rough Skin"})
}

func TestWorldSatisfies(t *testing.T) {
	w := testWorld()

	tests := []struct {
		prop string
		want bool
	}{
		{"has_tag:Earthquake", true},
		{"has_tag:Fire Fang", false},
		{"not_has_tag:Fire Fang", true},
		{"not_has_tag:Earthquake", false},
		{"has_scalar:item:Focus Sash", true},
		{"has_scalar:item:Leftovers", false},
		{"not_has_scalar:item:Leftovers", true},
		{"has_scalar:ability:Rough Skin", true},
		{"has_scalar:tera:Steel", false}, // attribute the world doesn't carry
		{"not_has_scalar:tera:Steel", true},
	}
	for _, tt := range tests {
		if got := w.Satisfies(MustParseProposition(tt.prop)); got != tt.want {
			t.Errorf("Satisfies(%q) = %v, want %v", tt.prop, got, tt.want)
		}
	}
}

func TestWorldImmutable(t *testing.T) {
	moves := []string{"Earthquake"}
	scalars := map[string]string{"item": "Leftovers"}
	w := NewWorld("Garchomp_0", "Garchomp", moves, scalars)

	moves[0] = "Splash"
	scalars["item"] = "Choice Band"

	if !w.HasMove("Earthquake") {
		t.Error("mutating the input slice leaked into the world")
	}
	if w.Scalar("item") != "Leftovers" {
		t.Error("mutating the input map leaked into the world")
	}
}

func TestWorldString(t *testing.T) {
	w := NewWorld("Garchomp_0", "Garchomp",
		[]string{"Earthquake", "Dragon Claw"},
		map[string]string{"item": "Focus Sash", "ability": "Rough Skin"})

	want := "Garchomp[Dragon Claw, Earthquake | ability=Rough Skin | item=Focus Sash]"
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
