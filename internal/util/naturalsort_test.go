package util

import (
	"reflect"
	"testing"
)

func TestNaturalLess(t *testing.T) {
	testCases := []struct {
		a, b     string
		expected bool
	}{
		{"img2.png", "img10.png", true},
		{"img10.png", "img2.png", false},
		{"2.jpg", "10.jpg", true},
		{"ch 2", "ch 10", true},
		{"chapter 10", "chapter 2", false},
		{"v1.2", "v1.10", true},
		{"a", "b", true},
		{"b", "a", false},
		{"file", "file1", true},
		{"file1", "file", false},
	}
	for _, tc := range testCases {
		if got := NaturalLess(tc.a, tc.b); got != tc.expected {
			t.Errorf("NaturalLess(%q, %q) = %v; want %v", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestNaturalLessCaseInsensitive(t *testing.T) {
	// "b" sorts after "A" regardless of case.
	if !NaturalLess("A", "b") {
		t.Error(`expected "A" < "b"`)
	}
	if NaturalLess("b", "A") {
		t.Error(`expected "b" > "A"`)
	}
	if NaturalLess("File1", "file1") || NaturalLess("file1", "File1") {
		t.Error(`expected "File1" and "file1" to compare equal`)
	}
}

func TestCompareNaturalEqual(t *testing.T) {
	for _, s := range []string{"chapter 1", "file1.jpg", "v1.0", ""} {
		if c := CompareNatural(s, s); c != 0 {
			t.Errorf("CompareNatural(%q, %q) = %d; want 0", s, s, c)
		}
	}
}

func TestSortNatural(t *testing.T) {
	names := []string{"10.jpg", "2.jpg", "1.jpg", "img10.png", "img2.png"}
	SortNatural(names)
	want := []string{"1.jpg", "2.jpg", "10.jpg", "img2.png", "img10.png"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("SortNatural = %v; want %v", names, want)
	}
}

func TestNaturalLessHugeNumbers(t *testing.T) {
	// Digit runs beyond int range fall back to string comparison
	// instead of panicking.
	a := "file99999999999999999999999999"
	b := "file99999999999999999999999998"
	if NaturalLess(a, b) {
		t.Errorf("expected %q >= %q", a, b)
	}
}
