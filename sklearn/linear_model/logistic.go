package linear_model

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/MalayAgr/Kaggle-Space-Titanic/core/model"
	"github.com/MalayAgr/Kaggle-Space-Titanic/core/parallel"
	"github.com/MalayAgr/Kaggle-Space-Titanic/metrics"
	"github.com/MalayAgr/Kaggle-Space-Titanic/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// EarlyStoppingRounds is the fit parameter naming how many iterations
// without improvement of the evaluation-set log loss are tolerated.
const EarlyStoppingRounds = "early_stopping_rounds"

// LogisticRegression is an L2-regularised binary logistic regression
// trained with batch gradient descent. It implements model.Classifier.
//
// When Fit receives an evaluation set (model.WithEvalSet) together with the
// EarlyStoppingRounds fit parameter, training stops once the validation log
// loss has not improved for that many iterations and the best coefficients
// are kept.
type LogisticRegression struct {
	state *model.StateManager

	// Hyperparameters
	C            float64 // Inverse regularization strength
	fitIntercept bool
	learningRate float64
	maxIter      int
	tol          float64
	randomState  int64

	// Model parameters
	coef         []float64
	intercept    float64
	nIter        int
	stoppedEarly bool
}

// LogisticRegressionOption is a functional option for LogisticRegression
type LogisticRegressionOption func(*LogisticRegression)

// NewLogisticRegression creates a new LogisticRegression classifier
func NewLogisticRegression(opts ...LogisticRegressionOption) *LogisticRegression {
	lr := &LogisticRegression{
		state:        model.NewStateManager(),
		C:            1.0,
		fitIntercept: true,
		learningRate: 1.0,
		maxIter:      100,
		tol:          1e-4,
		randomState:  0,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// NewLogisticRegressionFromParams builds a classifier from a hyperparameter
// set. Recognised names: C, fit_intercept, learning_rate, max_iter, tol,
// random_state. Absent names keep their defaults.
func NewLogisticRegressionFromParams(p model.Params) (*LogisticRegression, error) {
	lr := NewLogisticRegression()
	lr.C = p.GetFloat("C", lr.C)
	lr.fitIntercept = p.GetBool("fit_intercept", lr.fitIntercept)
	lr.learningRate = p.GetFloat("learning_rate", lr.learningRate)
	lr.maxIter = p.GetInt("max_iter", lr.maxIter)
	lr.tol = p.GetFloat("tol", lr.tol)
	lr.randomState = int64(p.GetInt("random_state", int(lr.randomState)))

	if lr.C <= 0 {
		return nil, errors.NewValidationError("C", "must be positive", lr.C)
	}
	if lr.maxIter <= 0 {
		return nil, errors.NewValidationError("max_iter", "must be positive", lr.maxIter)
	}
	if lr.learningRate <= 0 {
		return nil, errors.NewValidationError("learning_rate", "must be positive", lr.learningRate)
	}
	return lr, nil
}

// WithLRC sets the inverse regularization strength
func WithLRC(c float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.C = c
	}
}

// WithLogisticFitIntercept sets whether to fit intercept
func WithLogisticFitIntercept(fit bool) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.fitIntercept = fit
	}
}

// WithLRLearningRate sets the initial gradient descent step.
func WithLRLearningRate(eta float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.learningRate = eta
	}
}

// WithLRMaxIter sets the maximum number of iterations
func WithLRMaxIter(maxIter int) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.maxIter = maxIter
	}
}

// WithLRTol sets the tolerance for stopping criteria
func WithLRTol(tol float64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.tol = tol
	}
}

// WithLRRandomState sets the seed for the initial coefficients
func WithLRRandomState(seed int64) LogisticRegressionOption {
	return func(lr *LogisticRegression) {
		lr.randomState = seed
	}
}

// Fit trains the model on X (n × features) and 0/1 labels y (n × 1).
func (lr *LogisticRegression) Fit(X, y mat.Matrix, opts ...model.FitOption) (err error) {
	defer errors.Recover(&err, "LogisticRegression.Fit")

	cfg := model.NewFitConfig(opts...)
	nSamples, nFeatures := X.Dims()
	if nSamples == 0 || nFeatures == 0 {
		return errors.NewModelError("LogisticRegression.Fit", "empty input", errors.ErrEmptyData)
	}
	yRows, yCols := y.Dims()
	if yRows != nSamples {
		return errors.NewDimensionError("LogisticRegression.Fit", nSamples, yRows, 0)
	}
	if yCols != 1 {
		return errors.NewDimensionError("LogisticRegression.Fit", 1, yCols, 1)
	}

	target := mat.Col(nil, 0, y)
	if err := checkLabels("LogisticRegression.Fit", target); err != nil {
		return err
	}

	weights := cfg.SampleWeight
	if weights == nil {
		weights = make([]float64, nSamples)
		floats.AddConst(1, weights)
	} else if len(weights) != nSamples {
		return errors.NewDimensionError("LogisticRegression.Fit(sample_weight)", nSamples, len(weights), 0)
	}
	totalWeight := floats.Sum(weights)
	if totalWeight <= 0 {
		return errors.NewValidationError("sample_weight", "must sum to a positive value", totalWeight)
	}

	eval, err := newEvalSet(cfg, nFeatures)
	if err != nil {
		return err
	}

	lr.state.Reset()
	lr.stoppedEarly = false
	lr.coef = lr.initialCoef(nFeatures)
	lr.intercept = 0

	coef := mat.NewVecDense(nFeatures, lr.coef)
	grad := mat.NewVecDense(nFeatures, nil)
	residual := mat.NewVecDense(nSamples, nil)
	lambda := 1.0 / (lr.C * float64(nSamples))

	bestLoss := math.Inf(1)
	var bestCoef []float64
	bestIntercept, sinceBest := 0.0, 0
	converged := false

	for iter := 0; iter < lr.maxIter; iter++ {
		z := lr.decision(X, lr.coef, lr.intercept)
		for i := 0; i < nSamples; i++ {
			residual.SetVec(i, weights[i]*(errors.Sigmoid(z[i])-target[i])/totalWeight)
		}

		grad.MulVec(X.T(), residual)
		grad.AddScaledVec(grad, lambda, coef)
		gradIntercept := mat.Sum(residual)

		step := lr.learningRate / (1.0 + 0.1*float64(iter))
		coef.AddScaledVec(coef, -step, grad)
		if lr.fitIntercept {
			lr.intercept -= step * gradIntercept
		}
		if err := errors.CheckNumericalStability("LogisticRegression.Fit", lr.coef, iter); err != nil {
			return err
		}
		lr.nIter = iter + 1

		if eval != nil {
			loss, err := metrics.BinaryLogLoss(eval.y, mat.NewVecDense(len(eval.target), lr.proba(eval.X)))
			if err != nil {
				return err
			}
			if loss < bestLoss {
				bestLoss = loss
				bestCoef = append(bestCoef[:0], lr.coef...)
				bestIntercept = lr.intercept
				sinceBest = 0
			} else {
				sinceBest++
				if sinceBest >= eval.rounds {
					lr.stoppedEarly = true
					break
				}
			}
		}

		maxGrad := math.Max(math.Abs(gradIntercept), floats.Norm(grad.RawVector().Data, math.Inf(1)))
		if maxGrad < lr.tol {
			converged = true
			break
		}
	}

	if bestCoef != nil {
		copy(lr.coef, bestCoef)
		lr.intercept = bestIntercept
	}
	if !converged && !lr.stoppedEarly {
		errors.Warn(errors.NewConvergenceWarning("LogisticRegression", lr.nIter,
			"maximum iterations reached before the gradient fell below tol"))
	}

	lr.state.SetFitted(nFeatures, nSamples)
	return nil
}

// Predict returns n × 1 labels, 1 where P(y=1) >= 0.5.
func (lr *LogisticRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	pos, err := lr.positive(X, "Predict")
	if err != nil {
		return nil, err
	}
	labels := metrics.Threshold(pos, 0.5)
	return mat.NewDense(len(labels), 1, labels), nil
}

// PredictProba returns an n × 2 matrix of class probabilities.
func (lr *LogisticRegression) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	pos, err := lr.positive(X, "PredictProba")
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(len(pos), 2, nil)
	for i, p := range pos {
		out.Set(i, 0, 1-p)
		out.Set(i, 1, p)
	}
	return out, nil
}

// Score returns the mean accuracy on the given data and labels.
func (lr *LogisticRegression) Score(X, y mat.Matrix) (float64, error) {
	pred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.AccuracyMatrix(y, pred)
}

// Params returns the hyperparameters in the form accepted by
// NewLogisticRegressionFromParams.
func (lr *LogisticRegression) Params() model.Params {
	return model.Params{
		"C":             lr.C,
		"fit_intercept": lr.fitIntercept,
		"learning_rate": lr.learningRate,
		"max_iter":      lr.maxIter,
		"tol":           lr.tol,
		"random_state":  int(lr.randomState),
	}
}

// Coef returns a copy of the fitted coefficients.
func (lr *LogisticRegression) Coef() []float64 {
	return append([]float64(nil), lr.coef...)
}

// Intercept returns the fitted intercept.
func (lr *LogisticRegression) Intercept() float64 {
	return lr.intercept
}

// NIter returns the number of iterations run by the last Fit.
func (lr *LogisticRegression) NIter() int {
	return lr.nIter
}

// StoppedEarly reports whether the last Fit ended on the evaluation set.
func (lr *LogisticRegression) StoppedEarly() bool {
	return lr.stoppedEarly
}

func (lr *LogisticRegression) positive(X mat.Matrix, method string) ([]float64, error) {
	_, nFeatures := X.Dims()
	if err := lr.state.RequireFitted("LogisticRegression", method, nFeatures); err != nil {
		return nil, err
	}
	return lr.proba(X), nil
}

func (lr *LogisticRegression) proba(X mat.Matrix) []float64 {
	z := lr.decision(X, lr.coef, lr.intercept)
	for i := range z {
		z[i] = errors.Sigmoid(z[i])
	}
	return z
}

// decision computes X·coef + intercept, splitting rows across goroutines for
// large inputs.
func (lr *LogisticRegression) decision(X mat.Matrix, coef []float64, intercept float64) []float64 {
	n, nFeatures := X.Dims()
	out := make([]float64, n)
	parallel.Rows(n, parallel.DefaultThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			z := intercept
			for j := 0; j < nFeatures; j++ {
				z += X.At(i, j) * coef[j]
			}
			out[i] = z
		}
	})
	return out
}

func (lr *LogisticRegression) initialCoef(nFeatures int) []float64 {
	rng := rand.New(rand.NewSource(lr.randomState))
	coef := make([]float64, nFeatures)
	for j := range coef {
		coef[j] = rng.NormFloat64() * 0.01
	}
	return coef
}

type evalSet struct {
	X      mat.Matrix
	y      *mat.VecDense
	target []float64
	rounds int
}

// newEvalSet returns nil unless both an evaluation set and a positive
// EarlyStoppingRounds are present.
func newEvalSet(cfg *model.FitConfig, nFeatures int) (*evalSet, error) {
	rounds := model.Params(cfg.Extra).GetInt(EarlyStoppingRounds, 0)
	if cfg.XVal == nil || cfg.YVal == nil || rounds <= 0 {
		return nil, nil
	}
	r, c := cfg.XVal.Dims()
	if c != nFeatures {
		return nil, errors.NewDimensionError("LogisticRegression.Fit(eval_set)", nFeatures, c, 1)
	}
	yr, _ := cfg.YVal.Dims()
	if yr != r {
		return nil, errors.NewDimensionError("LogisticRegression.Fit(eval_set)", r, yr, 0)
	}
	target := mat.Col(nil, 0, cfg.YVal)
	if err := checkLabels("LogisticRegression.Fit(eval_set)", target); err != nil {
		return nil, err
	}
	return &evalSet{X: cfg.XVal, y: mat.NewVecDense(r, target), target: target, rounds: rounds}, nil
}

func checkLabels(op string, y []float64) error {
	for _, v := range y {
		if v != 0 && v != 1 {
			return errors.NewValueError(op, fmt.Sprintf("labels must be 0 or 1, got %v", v))
		}
	}
	return nil
}
