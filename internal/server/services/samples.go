package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/paydesk/internal/server/models"
	"github.com/dmitrijs2005/paydesk/internal/server/storage"
)

const maxSampleName = 150

type AddSampleRequest struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}

type SampleService struct {
	store *storage.Memory
}

func NewSampleService(store *storage.Memory) *SampleService {
	return &SampleService{store: store}
}

func (s *SampleService) List(ctx context.Context) []models.Sample {
	return s.store.Samples(ctx)
}

// Add validates and stores a sample. Failures are FieldErrors.
func (s *SampleService) Add(ctx context.Context, req AddSampleRequest) (models.Sample, error) {
	fe := FieldErrors{}
	var name string
	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
	}
	switch {
	case name == "":
		fe.add("name", msgRequired)
	case len(name) > maxSampleName:
		fe.add("name", "Ensure this field has no more than 150 characters.")
	}
	if req.Age == nil {
		fe.add("age", msgRequired)
	}
	if err := fe.orNil(); err != nil {
		return models.Sample{}, err
	}
	return s.store.AddSample(ctx, name, *req.Age), nil
}
