// Package spacetitanic is the model-training base layer for the Kaggle
// Spaceship Titanic competition.
//
// Every competition model shares the same workflow: a fixed 5-fold
// cross-validation over a pre-assigned fold column, out-of-fold prediction
// collection for stacking, averaging of the per-fold test predictions, and a
// hyperparameter search driven by goptuna's TPE sampler with
// successive-halving pruning.
//
// # Quick Start
//
//	registry := models.NewRegistry(nil)
//	if err := logreg.Register(registry, "Age", "RoomService"); err != nil {
//	    log.Fatal(err)
//	}
//
//	cv, err := registry.Build("logreg", train, test)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, params, err := cv.SearchAndTrain(50)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(params, res.Accuracy)
//
// # Packages
//
//   - models: registry, cross-validation orchestrator and hyperparameter search
//   - models/logreg: logistic regression registered as "logreg"
//   - core/frame: column-named table backed by gonum matrices
//   - core/model: Classifier contract, Params and fit options
//   - core/parallel: row-parallel helpers
//   - metrics: accuracy, log loss and AUC
//   - preprocessing: StandardScaler and frame helpers
//   - sklearn/linear_model: binary logistic regression
//   - config: viper-loaded, validated settings
//   - pkg/errors, pkg/log: error taxonomy and structured logging
//
// The spacetitanic command under cmd/ runs a search end to end on
// synthetic data and prints a submission.
package spacetitanic
