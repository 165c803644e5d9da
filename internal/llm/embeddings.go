package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultBatchSize caps how many texts go into one embeddings request.
const DefaultBatchSize = 64

// EmbeddingsClient generates embeddings via the OpenAI embeddings API.
// Batches are issued sequentially; the first failure aborts the call.
type EmbeddingsClient struct {
	client    openai.Client
	model     string
	batchSize int
}

// NewEmbeddingsClient creates a new embeddings client. Extra request options
// are passed through to the underlying OpenAI client.
func NewEmbeddingsClient(apiKey, model string, opts ...option.RequestOption) *EmbeddingsClient {
	return &EmbeddingsClient{
		client:    openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...),
		model:     model,
		batchSize: DefaultBatchSize,
	}
}

// EmbedTexts generates embeddings for the given texts, one vector per input in
// input order.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += c.batchSize {
		end := start + c.batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
			Model: openai.EmbeddingModel(c.model),
			Input: openai.EmbeddingNewParamsInputUnion{
				OfArrayOfStrings: batch,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("embeddings request failed: %w", err)
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("expected %d embeddings, got %d", len(batch), len(resp.Data))
		}

		for _, data := range resp.Data {
			vec := make([]float32, len(data.Embedding))
			for i, v := range data.Embedding {
				vec[i] = float32(v)
			}
			vectors = append(vectors, vec)
		}
	}

	return vectors, nil
}
