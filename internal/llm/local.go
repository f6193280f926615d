package llm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knights-analytics/hugot"
)

const (
	defaultLocalModel    = "sentence-transformers/all-MiniLM-L6-v2"
	defaultLocalModelDir = "./models"
	localModelDimensions = 384
)

type LocalConfig struct {
	Model         string // huggingface repository name
	ModelDir      string
	Dimensions    int
	MaxInputChars int
}

// runs a sentence-transformers model in-process through hugot's pure Go backend
type LocalEmbedder struct {
	sem     chan struct{} // one inference at a time
	run     func(texts []string) ([][]float32, error)
	destroy func() error
	config  LocalConfig
}

// loads the model once, downloading it into ModelDir on first start
func NewLocalEmbedder(config LocalConfig) (*LocalEmbedder, error) {
	if config.Model == "" {
		config.Model = defaultLocalModel
	}

	if config.ModelDir == "" {
		config.ModelDir = defaultLocalModelDir
	}

	if config.Dimensions == 0 {
		config.Dimensions = localModelDimensions
	}

	modelPath, err := prepareModel(config.Model, config.ModelDir)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	pipelineConfig := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "essay-embedder",
	}

	pipeline, err := hugot.NewPipeline(session, pipelineConfig)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create embedding pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create embedding pipeline: %w", err)
	}

	run := func(texts []string) ([][]float32, error) {
		result, err := pipeline.RunPipeline(texts)
		if err != nil {
			return nil, err
		}

		return result.Embeddings, nil
	}

	return newLocalEmbedder(config, run, session.Destroy), nil
}

func newLocalEmbedder(config LocalConfig, run func([]string) ([][]float32, error), destroy func() error) *LocalEmbedder {
	return &LocalEmbedder{sem: make(chan struct{}, 1), run: run, destroy: destroy, config: config}
}

func (e *LocalEmbedder) Model() string      { return e.config.Model }
func (e *LocalEmbedder) Dimensions() int    { return e.config.Dimensions }
func (e *LocalEmbedder) MaxInputChars() int { return e.config.MaxInputChars }

func (e *LocalEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	return embeddings[0], nil
}

// inference is CPU bound and not interruptible. callers waiting for the model
// give up when their context ends, and the context is checked again afterwards.
func (e *LocalEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) (vectors [][]float32, err error) {
	if err := validateInputs(texts, e.config.MaxInputChars); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { observeEmbedding(ProviderLocal, e.config.Model, start, err) }()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	vectors, err = e.run(texts)
	<-e.sem

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", ErrEmbedding, len(texts), len(vectors))
	}

	if err := checkDimensions(vectors, e.config.Dimensions); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return vectors, nil
}

// releases the inference session
func (e *LocalEmbedder) Close() error {
	if e.destroy == nil {
		return nil
	}

	return e.destroy()
}

// downloads the model if it doesn't exist and returns the model path
func prepareModel(modelName, modelDir string) (string, error) {
	modelPath := filepath.Join(modelDir, strings.ReplaceAll(modelName, "/", "_"))

	if _, err := os.Stat(modelPath); err == nil {
		return modelPath, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to stat model directory: %w", err)
	}

	if err := os.MkdirAll(modelDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create model directory: %w", err)
	}

	downloadOptions := hugot.NewDownloadOptions()
	downloadOptions.OnnxFilePath = "onnx/model.onnx"

	downloadedPath, err := hugot.DownloadModel(modelName, modelDir, downloadOptions)
	if err != nil {
		return "", fmt.Errorf("failed to download model %s: %w", modelName, err)
	}

	return downloadedPath, nil
}
