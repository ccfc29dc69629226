package status

import "testing"

func TestParseBothVocabularies(t *testing.T) {
	tests := []struct {
		raw  string
		want Status
	}{
		{"RECEIVED", Received},
		{"RECEIVING", Received},
		{"receiving", Received},
		{"IN THE OVEN", InTheOven},
		{"completed", Completed},
		{"COMPLETED", Completed},
		{"picked-up", PickedUp},
		{"ready-for-pickup", ReadyForPickup},
		{"READY FOR PICK-UP", ReadyForPickup},
		{"quality-control", QualityControl},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.raw)
		if !ok || got != tt.want {
			t.Errorf("Parse(%q) = %v, %v; want %v", tt.raw, got, ok, tt.want)
		}
	}
}

func TestClassifyFallback(t *testing.T) {
	for _, raw := range []string{"", "ON HOLD", "???", "in the freezer", "Received", "in progress", "Picked_Up", " COMPLETED", "new", "ready"} {
		d := Classify(raw)
		if d.Color != DefaultColor {
			t.Errorf("Classify(%q).Color = %q, want %q", raw, d.Color, DefaultColor)
		}
		if d.Label != raw {
			t.Errorf("Classify(%q).Label = %q, want raw string", raw, d.Label)
		}
		if d.Category != CategoryUnknown || d.Status != Unknown {
			t.Errorf("Classify(%q) = %+v", raw, d)
		}
	}
}

func TestClassifyKnown(t *testing.T) {
	d := Classify("IN THE OVEN")
	if d.Label != "In the Oven" || d.CustomerLabel != "Casting" || d.Category != CategoryProduction {
		t.Errorf("unexpected descriptor: %+v", d)
	}
	if Classify("in-the-oven") != d {
		t.Error("spellings of the same status produced different descriptors")
	}
}

func TestEveryStatusHasCategory(t *testing.T) {
	known := make(map[Category]bool)
	for _, c := range Categories() {
		known[c] = true
	}
	for _, d := range All() {
		if !known[d.Category] {
			t.Errorf("%s has category %q outside Categories()", d.Code, d.Category)
		}
		if d.Label == "" || d.Color == "" || d.Icon == "" {
			t.Errorf("%s has empty projection: %+v", d.Code, d)
		}
	}
	if len(All()) != int(Cancelled) {
		t.Errorf("All() returned %d statuses, want %d", len(All()), int(Cancelled))
	}
}

func TestAliasesDoNotCollide(t *testing.T) {
	seen := make(map[string]Status)
	for s, e := range table {
		for _, spelling := range append([]string{e.code}, e.aliases...) {
			if prev, ok := seen[spelling]; ok && prev != s {
				t.Errorf("%q maps to both %v and %v", spelling, prev, s)
			}
			seen[spelling] = s
		}
	}
}

func TestTerminal(t *testing.T) {
	if !PickedUp.IsTerminal() || !Cancelled.IsTerminal() {
		t.Error("picked up / cancelled should be terminal")
	}
	if InProgress.IsTerminal() || Unknown.IsTerminal() {
		t.Error("in progress / unknown should not be terminal")
	}
	if CategoryOf("nonsense") != CategoryUnknown {
		t.Error("CategoryOf unknown")
	}
}
