package preprocessing

import (
	"fmt"
	"math"

	"github.com/MalayAgr/Kaggle-Space-Titanic/core/frame"
	"github.com/MalayAgr/Kaggle-Space-Titanic/core/model"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler はscikit-learn互換の標準化スケーラー
// データを平均0、標準偏差1に変換する
type StandardScaler struct {
	state *model.StateManager

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差
	Scale []float64

	// WithMean は平均を引くかどうか (デフォルト: true)
	WithMean bool

	// WithStd は標準偏差で割るかどうか (デフォルト: true)
	WithStd bool
}

var _ model.Transformer = (*StandardScaler)(nil)

// NewStandardScaler は新しいStandardScalerを作成する
//
// 使用例:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	err := scaler.Fit(X)
//	XScaled, err := scaler.Transform(X)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		state:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault はデフォルト設定でStandardScalerを作成する
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit は訓練データから統計情報（平均、標準偏差）を計算する
// 標準偏差は母標準偏差を使う
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		if err := errors.CheckNumericalStability("StandardScaler.Fit", col, 0); err != nil {
			return err
		}
		mean, std := stat.PopMeanStdDev(col, nil)

		s.Mean[j] = 0
		if s.WithMean {
			s.Mean[j] = mean
		}
		s.Scale[j] = 1
		// 標準偏差が0に近い場合は1のまま（ゼロ除算を避ける）
		if s.WithStd && std >= 1e-8 {
			s.Scale[j] = std
		}
	}

	s.state.SetFitted(c, r)
	return nil
}

// Transform は学習済みの統計情報を使ってデータを標準化する
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := s.state.RequireFitted("StandardScaler", "Transform", c); err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return (v - s.Mean[j]) / s.Scale[j]
	}, X)
	return result, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform は標準化されたデータを元のスケールに戻す
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := s.state.RequireFitted("StandardScaler", "InverseTransform", c); err != nil {
		return nil, err
	}

	result := mat.NewDense(r, c, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return v*s.Scale[j] + s.Mean[j]
	}, X)
	return result, nil
}

// String はスケーラーの文字列表現を返す
func (s *StandardScaler) String() string {
	if !s.state.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.state.NFeatures())
}

// ScaleColumns は train の指定列で StandardScaler を学習し、
// train と test の同じ列を標準化した新しいフレームを返す。
// 入力フレームは変更しない。
//
// 交差検証の前処理フックから使うことを想定している:
//
//	func (m *myModel) PreprocessDatasets(train, test *frame.Frame) (*frame.Frame, *frame.Frame, error) {
//	    return preprocessing.ScaleColumns(train, test, "Age", "RoomService")
//	}
func ScaleColumns(train, test *frame.Frame, columns ...string) (*frame.Frame, *frame.Frame, error) {
	if len(columns) == 0 {
		return train, test, nil
	}

	trainCols, err := train.Select(columns...)
	if err != nil {
		return nil, nil, err
	}
	testCols, err := test.Select(columns...)
	if err != nil {
		return nil, nil, err
	}

	scaler := NewStandardScalerDefault()
	scaledTrain, err := scaler.FitTransform(trainCols.Matrix())
	if err != nil {
		return nil, nil, err
	}
	scaledTest, err := scaler.Transform(testCols.Matrix())
	if err != nil {
		return nil, nil, err
	}

	outTrain, outTest := train.Clone(), test.Clone()
	for j, name := range columns {
		if err := outTrain.SetCol(name, mat.Col(nil, j, scaledTrain)); err != nil {
			return nil, nil, err
		}
		if err := outTest.SetCol(name, mat.Col(nil, j, scaledTest)); err != nil {
			return nil, nil, err
		}
	}
	return outTrain, outTest, nil
}

// FillNaN は指定列の NaN を train の平均値で埋めた新しいフレームを返す
func FillNaN(train, test *frame.Frame, columns ...string) (*frame.Frame, *frame.Frame, error) {
	outTrain, outTest := train.Clone(), test.Clone()
	for _, name := range columns {
		col, err := train.Col(name)
		if err != nil {
			return nil, nil, err
		}
		var sum float64
		var n int
		for _, v := range col {
			if !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		fill := 0.0
		if n > 0 {
			fill = sum / float64(n)
		}
		for _, f := range []*frame.Frame{outTrain, outTest} {
			values, err := f.Col(name)
			if err != nil {
				return nil, nil, err
			}
			for i, v := range values {
				if math.IsNaN(v) {
					values[i] = fill
				}
			}
			if err := f.SetCol(name, values); err != nil {
				return nil, nil, err
			}
		}
	}
	return outTrain, outTest, nil
}
