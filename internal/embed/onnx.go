// ABOUTME: Local embedding variant running a MiniLM-family ONNX model in-process
// ABOUTME: WordPiece tokenization, padded batch inference, CLS pooling
package embed

import (
	"context"
	"fmt"

	"github.com/harper/vidrag/internal/models"
	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// maxBatchTokens caps batchSize*maxSeqLen per inference call so padded
// batches stay within memory.
const maxBatchTokens = 8192

// ONNXEmbedder runs a sentence-transformer ONNX export locally. The
// default model family (all-MiniLM-L6-v2) produces 384-dimensional
// vectors.
type ONNXEmbedder struct {
	tok       *tokenizer.Tokenizer
	session   *ort.DynamicAdvancedSession
	dimension int
}

// NewONNXEmbedder loads the tokenizer and model from disk and prepares
// an inference session.
func NewONNXEmbedder(modelPath, tokenizerPath string, dimension int) (*ONNXEmbedder, error) {
	tok, err := pretrained.FromFile(tokenizerPath)
	if err != nil {
		return nil, &models.ProviderError{Provider: "onnx", Op: "load tokenizer", Err: err}
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, &models.ProviderError{Provider: "onnx", Op: "init", Err: err}
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, &models.ProviderError{Provider: "onnx", Op: "init", Err: err}
	}
	defer opts.Destroy()

	if err := opts.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		return nil, &models.ProviderError{Provider: "onnx", Op: "init", Err: err}
	}
	if err := opts.SetIntraOpNumThreads(0); err != nil {
		return nil, &models.ProviderError{Provider: "onnx", Op: "init", Err: err}
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		opts,
	)
	if err != nil {
		return nil, &models.ProviderError{Provider: "onnx", Op: "load model", Err: err}
	}

	return &ONNXEmbedder{
		tok:       tok,
		session:   session,
		dimension: dimension,
	}, nil
}

// Dimension returns the configured vector length.
func (e *ONNXEmbedder) Dimension() int {
	return e.dimension
}

// Embed produces the vector for one text.
func (e *ONNXEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all texts, splitting the work into padded batches
// under the token budget.
func (e *ONNXEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	lengths := make([]int, len(texts))
	for i, t := range texts {
		enc, err := e.tok.EncodeSingle(t)
		if err != nil {
			return nil, &models.ProviderError{Provider: "onnx", Op: "tokenize", Err: err}
		}
		lengths[i] = len(enc.GetIds())
	}

	all := make([][]float32, 0, len(texts))
	i := 0
	for i < len(texts) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Grow the batch while the padded size stays under budget.
		var batch []string
		maxSeqLen := 0
		for i < len(texts) {
			seqLen := max(maxSeqLen, lengths[i])
			if len(batch) > 0 && (len(batch)+1)*seqLen > maxBatchTokens {
				break
			}
			batch = append(batch, texts[i])
			maxSeqLen = seqLen
			i++
		}

		vectors, err := e.runBatch(batch)
		if err != nil {
			return nil, err
		}
		all = append(all, vectors...)
	}

	if err := checkVectors(all, e.dimension); err != nil {
		return nil, err
	}
	return all, nil
}

// runBatch tokenizes and runs one padded batch through the model,
// returning the CLS token embedding for each input.
func (e *ONNXEmbedder) runBatch(texts []string) ([][]float32, error) {
	inputs := make([]tokenizer.EncodeInput, len(texts))
	for i, t := range texts {
		inputs[i] = tokenizer.NewSingleEncodeInput(tokenizer.NewInputSequence(t))
	}

	encodings, err := e.tok.EncodeBatch(inputs, true)
	if err != nil {
		return nil, &models.ProviderError{Provider: "onnx", Op: "tokenize", Err: err}
	}

	maxLen := 0
	for _, enc := range encodings {
		maxLen = max(maxLen, len(enc.GetIds()))
	}

	batchSize := len(encodings)
	inputIDs := make([]int64, batchSize*maxLen)
	attentionMask := make([]int64, batchSize*maxLen)
	tokenTypeIDs := make([]int64, batchSize*maxLen)

	for i, enc := range encodings {
		ids := enc.GetIds()
		mask := enc.GetAttentionMask()
		offset := i * maxLen
		for j := 0; j < len(ids); j++ {
			inputIDs[offset+j] = int64(ids[j])
			attentionMask[offset+j] = int64(mask[j])
		}
	}

	shape := ort.NewShape(int64(batchSize), int64(maxLen))

	idsTensor, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return nil, &models.ProviderError{Provider: "onnx", Op: "embed", Err: err}
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(shape, attentionMask)
	if err != nil {
		return nil, &models.ProviderError{Provider: "onnx", Op: "embed", Err: err}
	}
	defer maskTensor.Destroy()

	typeTensor, err := ort.NewTensor(shape, tokenTypeIDs)
	if err != nil {
		return nil, &models.ProviderError{Provider: "onnx", Op: "embed", Err: err}
	}
	defer typeTensor.Destroy()

	outputs := make([]ort.Value, 1)
	if err := e.session.Run([]ort.Value{idsTensor, maskTensor, typeTensor}, outputs); err != nil {
		return nil, &models.ProviderError{Provider: "onnx", Op: "embed", Err: err}
	}
	defer outputs[0].Destroy()

	outTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, &models.ProviderError{Provider: "onnx", Op: "embed",
			Err: fmt.Errorf("output tensor is not float32")}
	}

	// Output shape is [batch, sequence, hidden]; take the CLS token.
	outShape := outTensor.GetShape()
	seqLen := outShape[1]
	hiddenDim := outShape[2]
	data := outTensor.GetData()

	vectors := make([][]float32, batchSize)
	for i := int64(0); i < int64(batchSize); i++ {
		start := i * seqLen * hiddenDim
		// Copy before the tensor is destroyed.
		vectors[i] = make([]float32, hiddenDim)
		copy(vectors[i], data[start:start+hiddenDim])
	}
	return vectors, nil
}

// Close releases the inference session and runtime environment.
func (e *ONNXEmbedder) Close() error {
	if e.session != nil {
		e.session.Destroy()
		e.session = nil
	}
	ort.DestroyEnvironment()
	return nil
}
