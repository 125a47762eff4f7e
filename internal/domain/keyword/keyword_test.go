package keyword

import (
	"reflect"
	"testing"
)

func TestExtract(t *testing.T) {
	e := New()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "lowercases and drops short tokens",
			in:   "Great job on the launch!",
			want: []string{"great", "launch"},
		},
		{
			name: "splits on punctuation and digits",
			in:   "shipped v2 of billing-service, amazing work",
			want: []string{"shipped", "billing", "service", "amazing", "work"},
		},
		{
			name: "keeps duplicate occurrences",
			in:   "great great work",
			want: []string{"great", "great", "work"},
		},
		{
			name: "emoji and symbols are boundaries",
			in:   "Excellent problem-solving during the incident 🔧",
			want: []string{"excellent", "problem", "solving", "during", "incident"},
		},
		{
			name: "empty message",
			in:   "",
			want: nil,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := e.Extract(c.in)
			if len(got) == 0 && len(c.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("Extract(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestExtractMinLength(t *testing.T) {
	e := New(WithMinLength(6))

	got := e.Extract("superb effort on the rollout")
	want := []string{"superb", "effort", "rollout"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Extract = %v, want %v", got, want)
	}
}
