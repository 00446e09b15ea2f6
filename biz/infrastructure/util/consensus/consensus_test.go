package consensus

import "testing"

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		points   []float64
		settings Settings
		required bool
	}{
		{
			name:     "距离在容差内",
			points:   []float64{14, 14.5},
			settings: Settings{MaxAutoDistance: 1, StitchWhenDistance: true},
			required: false,
		},
		{
			name:     "距离超出容差",
			points:   []float64{12, 16},
			settings: Settings{MaxAutoDistance: 1, StitchWhenDistance: true},
			required: true,
		},
		{
			name:     "距离合格但均值带小数",
			points:   []float64{13, 14},
			settings: Settings{MaxAutoDistance: 1, StitchWhenDistance: true, StitchWhenDecimals: true},
			required: true,
		},
		{
			name:     "均值为整数",
			points:   []float64{13, 15},
			settings: Settings{MaxAutoDistance: 2, StitchWhenDistance: true, StitchWhenDecimals: true},
			required: false,
		},
		{
			name:     "两个开关都关闭",
			points:   []float64{0, 20},
			settings: Settings{MaxAutoDistance: 1},
			required: false,
		},
		{
			name:     "距离刚好等于容差",
			points:   []float64{14, 15},
			settings: Settings{MaxAutoDistance: 1, StitchWhenDistance: true},
			required: false,
		},
		{
			name:     "三个批改人取最大两两距离",
			points:   []float64{12, 13, 16},
			settings: Settings{MaxAutoDistance: 2, StitchWhenDistance: true},
			required: true,
		},
		{
			name:     "只有一个批改人",
			points:   []float64{15},
			settings: Settings{MaxAutoDistance: 0, StitchWhenDistance: true, StitchWhenDecimals: true},
			required: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Evaluate(tt.points, tt.settings)
			if res.StitchRequired != tt.required {
				t.Errorf("StitchRequired = %v, want %v", res.StitchRequired, tt.required)
			}
		})
	}
}

func TestEvaluateSuggested(t *testing.T) {
	res := Evaluate([]float64{13, 14}, Settings{})
	if res.Suggested != 13.5 {
		t.Errorf("Suggested = %v, want 13.5", res.Suggested)
	}

	res = Evaluate([]float64{15}, Settings{})
	if res.Suggested != 15 {
		t.Errorf("Suggested = %v, want 15", res.Suggested)
	}

	res = Evaluate(nil, Settings{})
	if res.StitchRequired || res.Suggested != 0 {
		t.Errorf("empty points: got %+v", res)
	}
}
