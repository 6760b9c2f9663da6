package geom

import (
	"errors"
	"testing"
)

func TestParseMargin(t *testing.T) {
	type tc struct {
		input string
		want  Margin
	}

	tests := map[string]tc{
		"empty": {
			input: "",
			want:  Margin{},
		},
		"single px": {
			input: "100px",
			want:  MarginAll(Fixed(100)),
		},
		"single zero": {
			input: "0px",
			want:  MarginAll(Fixed(0)),
		},
		"vertical horizontal": {
			input: "10px 20px",
			want:  Margin{Top: Fixed(10), Right: Fixed(20), Bottom: Fixed(10), Left: Fixed(20)},
		},
		"three values": {
			input: "0 10% 5px",
			want:  Margin{Top: Fixed(0), Right: Percent(10), Bottom: Fixed(5), Left: Percent(10)},
		},
		"four values": {
			input: "1 2 3 4",
			want:  Margin{Top: Fixed(1), Right: Fixed(2), Bottom: Fixed(3), Left: Fixed(4)},
		},
		"negative": {
			input: "-10px",
			want:  MarginAll(Fixed(-10)),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseMargin(tt.input)
			if err != nil {
				t.Fatalf("ParseMargin(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMargin(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMargin_Errors(t *testing.T) {
	tests := map[string]string{
		"too many values": "1 2 3 4 5",
		"bad unit":        "10em",
		"garbage":         "wide",
		"nan":             "NaN",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseMargin(input)
			if !errors.Is(err, ErrInvalidMargin) {
				t.Errorf("ParseMargin(%q) error = %v, want ErrInvalidMargin", input, err)
			}
		})
	}
}

func TestMargin_Apply(t *testing.T) {
	type tc struct {
		margin Margin
		root   Rect
		want   Rect
	}

	tests := map[string]tc{
		"zero margin": {
			margin: Margin{},
			root:   NewRect(0, 0, 80, 24),
			want:   NewRect(0, 0, 80, 24),
		},
		"fixed grow": {
			margin: MarginAll(Fixed(10)),
			root:   NewRect(0, 0, 80, 24),
			want:   NewRect(-10, -10, 100, 44),
		},
		"percent uses axis length": {
			margin: Margin{Top: Percent(50), Bottom: Percent(50), Left: Percent(10), Right: Percent(10)},
			root:   NewRect(0, 0, 100, 20),
			want:   NewRect(-10, -10, 120, 40),
		},
		"negative shrinks": {
			margin: MarginAll(Fixed(-2)),
			root:   NewRect(0, 0, 10, 10),
			want:   NewRect(2, 2, 6, 6),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.margin.Apply(tt.root); got != tt.want {
				t.Errorf("Apply(%v) = %v, want %v", tt.root, got, tt.want)
			}
		})
	}
}
