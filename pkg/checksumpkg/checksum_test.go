package checksumpkg

import "testing"

func TestSum(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  uint64
	}{
		{name: "Empty", input: "", want: 5381},
		{name: "SingleByte", input: "a", want: 177670},
		{name: "Word", input: "hello", want: 210714636441},
		{name: "AccountNumber", input: "CSAGRP6A001", want: 13819220615215631309},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			if got := Sum([]byte(tc.input)); got != tc.want {
				t.Errorf("Sum(%q) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestDigest(t *testing.T) {
	if got := Digest("hello"); got != "210714636441" {
		t.Errorf(`Digest("hello") = %q, want "210714636441"`, got)
	}

	// Digest must be stable across calls.
	if Digest("hello") != Digest("hello") {
		t.Error(`Digest("hello") is not deterministic`)
	}
}

func TestBucket(t *testing.T) {
	const buckets = 10

	testCases := []struct {
		name  string
		input string
		want  int
	}{
		{name: "First", input: "CSAGRP6A001", want: 9},
		{name: "Second", input: "CSAGRP6A002", want: 0},
		{name: "CollidesWithSecond", input: "CSAGRP6A019", want: 0},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			got := Bucket(tc.input, buckets)
			if got != tc.want {
				t.Errorf("Bucket(%q, %d) = %d, want %d", tc.input, buckets, got, tc.want)
			}

			if got < 0 || got >= buckets {
				t.Errorf("Bucket(%q, %d) = %d, out of range", tc.input, buckets, got)
			}
		})
	}
}
