package metrics

import (
	"math"
	"sort"

	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// checkPair は2つのベクトルが空でなく同じ長さであることを確認する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

func checkBinary(op string, y *mat.VecDense) error {
	for i := 0; i < y.Len(); i++ {
		if v := y.AtVec(i); v != 0 && v != 1 {
			return errors.NewValueError(op, "labels must be binary (0 or 1)")
		}
	}
	return nil
}

// Accuracy は正解率を計算する
// ラベルは完全一致で比較する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// AccuracyMatrix は n×1 行列に対して正解率を計算する
func AccuracyMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columnPair("AccuracyMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return Accuracy(t, p)
}

// ClassificationError は誤分類率 (1 - Accuracy) を計算する
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// BinaryLogLoss は二値分類の交差エントロピー損失を計算する
// 予測確率は log(0) を避けるためにクリップされる
func BinaryLogLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("BinaryLogLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("BinaryLogLoss", yTrue); err != nil {
		return 0, err
	}

	const eps = 1e-15
	var loss float64
	for i := 0; i < n; i++ {
		p := errors.ClipValue(yPred.AtVec(i), eps, 1-eps)
		if yTrue.AtVec(i) == 1 {
			loss -= math.Log(p)
		} else {
			loss -= math.Log(1 - p)
		}
	}
	return loss / float64(n), nil
}

// AUC は ROC 曲線下面積を計算する
// 同順位のスコアは平均順位で扱う (Mann-Whitney U 統計量)。
// 片方のクラスしか存在しない場合は未定義なので 0.5 を返し、警告を出す。
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if err := checkBinary("AUC", yTrue); err != nil {
		return 0, err
	}

	labels := mat.Col(nil, 0, yTrue)
	nPos := floats.Sum(labels)
	nNeg := float64(n) - nPos
	if nPos == 0 || nNeg == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("AUC", "only one class present in y_true", 0.5))
		return 0.5, nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return yPred.AtVec(order[a]) < yPred.AtVec(order[b])
	})

	// 平均順位を割り当てる
	var rankSumPos float64
	for i := 0; i < n; {
		j := i
		for j+1 < n && yPred.AtVec(order[j+1]) == yPred.AtVec(order[i]) {
			j++
		}
		avgRank := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			if labels[order[k]] == 1 {
				rankSumPos += avgRank
			}
		}
		i = j + 1
	}

	u := rankSumPos - nPos*(nPos+1)/2
	return u / (nPos * nNeg), nil
}

// AUCMatrix は行列形式の入力に対して AUC を計算する
// 複数列の場合は先頭列を使う
func AUCMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	t, p, err := columnPair("AUCMatrix", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return AUC(t, p)
}

func columnPair(op string, yTrue, yPred mat.Matrix) (*mat.VecDense, *mat.VecDense, error) {
	if yTrue == nil || yPred == nil {
		return nil, nil, errors.NewValueError(op, "nil matrix")
	}
	rTrue, cTrue := yTrue.Dims()
	rPred, cPred := yPred.Dims()
	if rTrue == 0 || cTrue == 0 || cPred == 0 {
		return nil, nil, errors.NewValueError(op, "empty matrix")
	}
	if rTrue != rPred {
		return nil, nil, errors.NewDimensionError(op, rTrue, rPred, 0)
	}
	return mat.NewVecDense(rTrue, mat.Col(nil, 0, yTrue)),
		mat.NewVecDense(rPred, mat.Col(nil, 0, yPred)), nil
}

// Threshold は陽性確率をしきい値で 0/1 ラベルに変換する
func Threshold(proba []float64, threshold float64) []float64 {
	labels := make([]float64, len(proba))
	for i, p := range proba {
		if p >= threshold {
			labels[i] = 1
		}
	}
	return labels
}
