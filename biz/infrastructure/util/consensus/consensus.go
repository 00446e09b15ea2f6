package consensus

import (
	"math"

	"github.com/samber/lo"
)

// Settings 缝合裁决的阈值配置，来自批改任务设置
type Settings struct {
	MaxAutoDistance    float64
	StitchWhenDistance bool
	StitchWhenDecimals bool
}

// Result 共识评估结果
// Suggested 是自动定案时建议采用的分值（均值），是否采用由宿主决定
type Result struct {
	StitchRequired bool
	Suggested      float64
}

const epsilon = 1e-9

// Evaluate 根据所有批改人的最终得分判断是否需要缝合裁决
func Evaluate(points []float64, s Settings) Result {
	if len(points) == 0 {
		return Result{}
	}
	mean := lo.Sum(points) / float64(len(points))
	if len(points) < 2 {
		return Result{Suggested: points[0]}
	}

	res := Result{Suggested: mean}

	// 最大两两距离即最大值与最小值之差
	distance := lo.Max(points) - lo.Min(points)
	if s.StitchWhenDistance && distance > s.MaxAutoDistance+epsilon {
		res.StitchRequired = true
	}

	if s.StitchWhenDecimals && math.Abs(mean-math.Round(mean)) > epsilon {
		res.StitchRequired = true
	}

	return res
}
