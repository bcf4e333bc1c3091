package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/paydesk/internal/client/client"
	"github.com/dmitrijs2005/paydesk/internal/client/models"
)

type SampleService interface {
	List(ctx context.Context) ([]models.Sample, error)
	Add(ctx context.Context, s models.NewSample) (*models.Sample, error)
}

type sampleService struct {
	client client.Client
}

func NewSampleService(c client.Client) SampleService {
	return &sampleService{client: c}
}

func (s *sampleService) List(ctx context.Context) ([]models.Sample, error) {
	items, err := s.client.ListSamples(ctx)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	return items, nil
}

func (s *sampleService) Add(ctx context.Context, in models.NewSample) (*models.Sample, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Age < 0 {
		return nil, ErrInvalidSample
	}
	created, err := s.client.AddSample(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("add sample: %w", err)
	}
	return created, nil
}
