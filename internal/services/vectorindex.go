package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// VectorIndexService maintains the policy-passage index used to ground
// general-question answers. The index is built once from the configured
// policy document and only rebuilt when the collection is empty.
type VectorIndexService interface {
	EnsureBuilt(ctx context.Context) error
	IngestDocument(ctx context.Context, path string) error
	Search(ctx context.Context, query string, limit int) ([]string, error)
}

type vectorIndexService struct {
	client         *qdrant.Client
	llm            LLMService
	extractor      ExtractorService
	collectionName string
	documentPath   string
	chunkSize      int
	chunkOverlap   int
	vectorSize     uint64

	buildOnce sync.Once
	buildErr  error
}

func NewVectorIndexService(
	urlStr, apiKey, collectionName string,
	llm LLMService,
	extractor ExtractorService,
	documentPath string,
	chunkSize, chunkOverlap int,
) (VectorIndexService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port; the REST port in the URL is ignored.
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &vectorIndexService{
		client:         client,
		llm:            llm,
		extractor:      extractor,
		collectionName: collectionName,
		documentPath:   documentPath,
		chunkSize:      chunkSize,
		chunkOverlap:   chunkOverlap,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// EnsureBuilt implements VectorIndexService. Safe to call on every request;
// the build runs at most once per process.
func (v *vectorIndexService) EnsureBuilt(ctx context.Context) error {
	v.buildOnce.Do(func() {
		v.buildErr = v.build(ctx)
	})
	return v.buildErr
}

func (v *vectorIndexService) build(ctx context.Context) error {
	exists, err := v.client.CollectionExists(ctx, v.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if !exists {
		err = v.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: v.collectionName,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     v.vectorSize,
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			return fmt.Errorf("failed to create collection: %w", err)
		}
		log.Printf("✅ Qdrant collection '%s' created", v.collectionName)
	}

	count, err := v.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: v.collectionName,
	})
	if err != nil {
		return fmt.Errorf("failed to count points: %w", err)
	}
	if count > 0 {
		return nil
	}

	return v.IngestDocument(ctx, v.documentPath)
}

// IngestDocument chunks, embeds and stores one policy document.
func (v *vectorIndexService) IngestDocument(ctx context.Context, path string) error {
	text, err := v.extractor.ExtractFile(path)
	if err != nil {
		return fmt.Errorf("failed to extract policy document: %w", err)
	}

	chunks := ChunkText(CleanText(text), v.chunkSize, v.chunkOverlap)
	log.Printf("✂️  Ingesting %d policy chunks from %s", len(chunks), path)

	points := make([]*qdrant.PointStruct, 0, len(chunks))
	for i, chunk := range chunks {
		embedding, err := v.llm.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(uuid.New().String()),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"text":   chunk,
				"source": path,
				"chunk":  i,
			}),
		})
	}

	if _, err := v.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: v.collectionName,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

// Search implements VectorIndexService. It returns the text of the nearest
// policy passages.
func (v *vectorIndexService) Search(ctx context.Context, query string, limit int) ([]string, error) {
	embedding, err := v.llm.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	points, err := v.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: v.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	var passages []string
	for _, point := range points {
		if val, ok := point.Payload["text"]; ok {
			if s, ok := val.GetKind().(*qdrant.Value_StringValue); ok {
				passages = append(passages, s.StringValue)
			}
		}
	}
	return passages, nil
}
