package diag

import (
	"testing"

	"slate/internal/source"
)

func TestBag_AddRespectsCap(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(NewWarning(ExtLoadFailed, "one")) {
		t.Fatal("first Add should succeed")
	}
	if !bag.Add(NewWarning(ExtLoadFailed, "two")) {
		t.Fatal("second Add should succeed")
	}
	if bag.Add(NewWarning(ExtLoadFailed, "three")) {
		t.Error("Add over cap should return false")
	}
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
}

func TestBag_ErrorPastCapStillCounts(t *testing.T) {
	bag := NewBag(2)
	bag.Add(New(SevInfo, CfgInfo, "one"))
	bag.Add(New(SevInfo, CfgInfo, "two"))
	if bag.HasErrors() {
		t.Fatal("no errors added yet")
	}

	// storage is full; the error must still flip the run's outcome
	if bag.Add(NewError(EmitFailed, "write failed")) {
		t.Error("Add over cap should not store the item")
	}
	if !bag.HasErrors() {
		t.Error("HasErrors() = false for an error added past the cap")
	}
	if bag.ErrorCount() != 1 {
		t.Errorf("ErrorCount() = %d, want 1", bag.ErrorCount())
	}
	if bag.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", bag.Dropped())
	}
	if bag.Len() != 2 {
		t.Errorf("Len() = %d, want 2", bag.Len())
	}
}

func TestBag_MergeCarriesCounts(t *testing.T) {
	other := NewBag(1)
	other.Add(New(SevInfo, CfgInfo, "stored"))
	other.Add(NewError(EmitFailed, "dropped error"))

	bag := NewBag(4)
	bag.Merge(other)
	if !bag.HasErrors() {
		t.Error("Merge must carry the dropped error's count")
	}
	if bag.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", bag.Dropped())
	}
}

func TestBag_HasErrors(t *testing.T) {
	bag := NewBag(10)
	bag.Add(New(SevInfo, CfgInfo, "info"))
	bag.Add(NewWarning(ExtLoadFailed, "warn"))
	if bag.HasErrors() {
		t.Error("HasErrors() = true without errors")
	}
	if !bag.HasWarnings() {
		t.Error("HasWarnings() = false with a warning present")
	}
	bag.Add(NewError(SemUnresolvedImport, "boom"))
	if !bag.HasErrors() {
		t.Error("HasErrors() = false after adding an error")
	}
}

func TestBag_SortIsDeterministic(t *testing.T) {
	bag := NewBag(10)
	bag.Add(NewError(SynMalformedImport, "b").At("b.sl", source.LineCol{Line: 2, Col: 1}))
	bag.Add(NewError(SynMalformedImport, "a2").At("a.sl", source.LineCol{Line: 3, Col: 1}))
	bag.Add(NewWarning(ExtPreProcess, "a1w").At("a.sl", source.LineCol{Line: 1, Col: 4}))
	bag.Add(NewError(SynMalformedImport, "a1e").At("a.sl", source.LineCol{Line: 1, Col: 4}))
	bag.Add(NewError(CfgParseError, "global"))

	bag.Sort()
	items := bag.Items()

	wantOrder := []string{"global", "a1e", "a1w", "a2", "b"}
	for i, want := range wantOrder {
		if items[i].Message != want {
			t.Errorf("items[%d].Message = %q, want %q", i, items[i].Message, want)
		}
	}
}
