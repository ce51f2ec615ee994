package domain

import "testing"

func TestFormatAddressSkipsEmptyFields(t *testing.T) {
	got := FormatAddress("1901 W Madison St", "", "Phoenix", "AZ", " ", "85009")
	want := "1901 W Madison St, Phoenix, AZ, 85009"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeAddress(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123 Main St", "123 main st"},
		{"  123   MAIN  st ", "123 main st"},
		{"\t123\nMain St", "123 main st"},
		{"", ""},
		{"   ", ""},
	}

	for _, tc := range cases {
		if got := NormalizeAddress(tc.in); got != tc.want {
			t.Fatalf("NormalizeAddress(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
