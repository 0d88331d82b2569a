package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/dsexplorer"
	"github.com/nao1215/dsexplorer/domain/model"
)

func TestParseFilterSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		spec    string
		want    model.Filter
		wantErr error
	}{
		{
			name: "comparison",
			spec: "building.apartment_count:>=:10",
			want: model.Filter{Dataset: model.DatasetBuilding, Column: "apartment_count", Operator: model.OperatorGreaterEqual, Operand1: "10"},
		},
		{
			name: "alias and spaces",
			spec: "rooms.space_type:=:kitchen",
			want: model.Filter{Dataset: model.DatasetRooms, Column: "space type", Operator: model.OperatorEqual, Operand1: "kitchen"},
		},
		{
			name: "range",
			spec: "windows.Sun Hours_summer:range:5:9",
			want: model.Filter{Dataset: model.DatasetWindows, Column: "Sun Hours_summer", Operator: model.OperatorRange, Operand1: "5", Operand2: "9"},
		},
		{
			name: "like keeps colons in the value",
			spec: "building.epw:LIKE:https://climate",
			want: model.Filter{Dataset: model.DatasetBuilding, Column: "epw", Operator: model.OperatorLike, Operand1: "https://climate"},
		},
		{
			name:    "missing value",
			spec:    "building.levels_count:>",
			wantErr: dsexplorer.ErrInvalidFilter,
		},
		{
			name:    "missing dataset",
			spec:    "levels_count:>:2",
			wantErr: dsexplorer.ErrInvalidFilter,
		},
		{
			name:    "unknown dataset",
			spec:    "floors.levels_count:>:2",
			wantErr: dsexplorer.ErrUnknownDataset,
		},
		{
			name:    "unknown operator",
			spec:    "building.levels_count:!=:2",
			wantErr: dsexplorer.ErrUnsupportedOperator,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parseFilterSpec(tt.spec)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
