package model

import "testing"

func TestParseOperator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Operator
		ok    bool
	}{
		{input: "=", want: OperatorEqual, ok: true},
		{input: ">=", want: OperatorGreaterEqual, ok: true},
		{input: "RANGE", want: OperatorRange, ok: true},
		{input: " Like ", want: OperatorLike, ok: true},
		{input: "!=", want: Operator("!="), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseOperator(tt.input)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseOperator(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFilter_Key(t *testing.T) {
	t.Parallel()

	f := Filter{Dataset: DatasetRooms, Column: "space name", Operator: OperatorLike, Operand1: "kitchen"}
	if f.Key() != "rooms.space name" {
		t.Errorf("unexpected key %q", f.Key())
	}
	if f.String() != "rooms.space name like kitchen" {
		t.Errorf("unexpected string %q", f.String())
	}

	r := Filter{Dataset: DatasetBuilding, Column: "levels_count", Operator: OperatorRange, Operand1: "2", Operand2: "5"}
	if r.String() != "building.levels_count range 2..5" {
		t.Errorf("unexpected string %q", r.String())
	}
}
