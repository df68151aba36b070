package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"option-set-api/internal/domain"
	"option-set-api/internal/dto"
	"option-set-api/internal/repository"
)

// sequencedMockRepo behaves like the real sequence reservation: each call
// hands out a contiguous block and advances the counter
func sequencedMockRepo() *MockOptionSetRepository {
	var mu sync.Mutex
	next := int64(1)
	position := -1
	return &MockOptionSetRepository{
		ReserveOptionSeqFunc: func(ctx context.Context, setID uuid.UUID, count int64) (int64, error) {
			mu.Lock()
			defer mu.Unlock()
			first := next
			next += count
			return first, nil
		},
		MaxOptionPositionFunc: func(ctx context.Context, setID uuid.UUID) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			return position, nil
		},
		CreateOptionFunc: func(ctx context.Context, option *domain.Option) error {
			mu.Lock()
			defer mu.Unlock()
			option.ID = uuid.New()
			position++
			return nil
		},
		CreateOptionsBatchFunc: func(ctx context.Context, options []*domain.Option) error {
			mu.Lock()
			defer mu.Unlock()
			for _, option := range options {
				option.ID = uuid.New()
				position++
			}
			return nil
		},
	}
}

// For any interleaving of single and bulk additions, every issued
// incremental ID is unique and strictly greater than all earlier ones
func TestProperty_IncrementalIDsNeverRepeat(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("incremental IDs are unique and monotonic across additions", prop.ForAll(
		func(batchSizes []int) bool {
			mockSets := sequencedMockRepo()
			service := newTestService(mockSets, nil, nil, nil)
			setID := uuid.New()

			seen := make(map[int64]bool)
			last := int64(0)

			for _, size := range batchSizes {
				var issued []int64
				if size <= 1 {
					resp, err := service.AddOption(context.Background(), setID, &dto.AddOptionRequest{Name: "Option"})
					if err != nil {
						return false
					}
					issued = []int64{resp.IncrementalID}
				} else {
					candidates := make([]dto.BulkOptionCandidate, size)
					for i := range candidates {
						candidates[i] = dto.BulkOptionCandidate{Name: "Option"}
					}
					resps, err := service.BulkAddOptions(context.Background(), setID, &dto.BulkAddOptionsRequest{Options: candidates})
					if err != nil {
						return false
					}
					for _, resp := range resps {
						issued = append(issued, resp.IncrementalID)
					}
				}

				for _, id := range issued {
					if seen[id] || id <= last {
						return false
					}
					seen[id] = true
					last = id
				}
			}
			return true
		},
		gen.SliceOfN(8, gen.IntRange(1, 10)),
	))

	properties.TestingRun(t)
}

// For any mix of blank and non-blank candidate names, exactly the
// non-blank ones are created, in their original order
func TestProperty_BulkAddKeepsOnlyNamedCandidates(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("blank candidates are dropped, order preserved", prop.ForAll(
		func(names []string) bool {
			mockSets := sequencedMockRepo()
			service := newTestService(mockSets, nil, nil, nil)
			setID := uuid.New()

			candidates := make([]dto.BulkOptionCandidate, len(names))
			wantNames := make([]string, 0, len(names))
			for i, name := range names {
				candidates[i] = dto.BulkOptionCandidate{Name: name}
				if strings.TrimSpace(name) != "" {
					wantNames = append(wantNames, name)
				}
			}

			resps, err := service.BulkAddOptions(context.Background(), setID, &dto.BulkAddOptionsRequest{Options: candidates})
			if len(wantNames) == 0 {
				// All-blank input must be rejected, not silently accepted
				return err != nil
			}
			if err != nil {
				return false
			}
			if len(resps) != len(wantNames) {
				return false
			}
			for i, resp := range resps {
				if resp.Name != wantNames[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf("Alpha", "Beta", "Gamma", "", "   ", "\t")),
	))

	properties.TestingRun(t)
}

// For any limit and skip, the page the caller gets back reflects the
// clamped values: limit within (0, MaxPageLimit], skip never negative
func TestProperty_ArchivePagingAlwaysClamped(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("archive paging parameters are clamped, never rejected", prop.ForAll(
		func(limit, skip int) bool {
			var gotLimit, gotSkip int
			mockArchives := &MockArchiveRepository{
				PageFunc: func(ctx context.Context, l, s int, sortBy string) ([]*domain.ArchivedSet, int64, error) {
					gotLimit = l
					gotSkip = s
					return []*domain.ArchivedSet{}, 0, nil
				},
			}
			service := newTestService(nil, mockArchives, nil, nil)

			page, err := service.ListArchives(context.Background(), limit, skip, "deleted_at")
			if err != nil {
				return false
			}
			if gotLimit <= 0 || gotLimit > repository.MaxPageLimit {
				return false
			}
			if gotSkip < 0 {
				return false
			}
			if limit > 0 && limit <= repository.MaxPageLimit && gotLimit != limit {
				return false
			}
			if skip >= 0 && gotSkip != skip {
				return false
			}
			return page.Limit == gotLimit && page.Skip == gotSkip
		},
		gen.IntRange(-1000, 1000),
		gen.IntRange(-1000, 1000),
	))

	properties.TestingRun(t)
}
