package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/trovehq/trove-backend/internal/domain"
	"github.com/trovehq/trove-backend/internal/repository"
	pkglogger "github.com/trovehq/trove-backend/pkg/logger"
)

// SearchService runs one federated search across items, catalogs, and
// profiles for a single query string
type SearchService interface {
	Search(ctx context.Context, query, viewerID string) (*domain.SearchResult, error)
}

type searchService struct {
	itemRepo     repository.ItemRepository
	catalogRepo  repository.CatalogRepository
	profileRepo  repository.ProfileRepository
	likeRepo     repository.LikeRepository
	bookmarkRepo repository.BookmarkRepository
}

// NewSearchService creates a new SearchService
func NewSearchService(
	itemRepo repository.ItemRepository,
	catalogRepo repository.CatalogRepository,
	profileRepo repository.ProfileRepository,
	likeRepo repository.LikeRepository,
	bookmarkRepo repository.BookmarkRepository,
) SearchService {
	return &searchService{
		itemRepo:     itemRepo,
		catalogRepo:  catalogRepo,
		profileRepo:  profileRepo,
		likeRepo:     likeRepo,
		bookmarkRepo: bookmarkRepo,
	}
}

// Search fans out the three sub-searches concurrently. A failure in one
// entity type degrades to an empty set for that type only; the other two
// are unaffected.
//
// A whitespace-only query returns three empty sets without touching the
// database. Callers cancel the context when a newer query supersedes this
// one; a cancelled search returns ctx.Err() so stale results are never
// surfaced.
func (s *searchService) Search(ctx context.Context, query, viewerID string) (*domain.SearchResult, error) {
	result := &domain.SearchResult{
		Items:    []domain.ItemResult{},
		Catalogs: []domain.CatalogResult{},
		Profiles: []domain.ProfileResult{},
	}

	keywords := Tokenize(query)
	if len(keywords) == 0 {
		return result, nil
	}
	full := strings.ToLower(strings.TrimSpace(query))

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		result.Items = s.searchItems(ctx, keywords, viewerID)
	}()
	go func() {
		defer wg.Done()
		result.Catalogs = s.searchCatalogs(ctx, full, viewerID)
	}()
	go func() {
		defer wg.Done()
		result.Profiles = s.searchProfiles(ctx, full)
	}()

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *searchService) searchItems(ctx context.Context, keywords []string, viewerID string) []domain.ItemResult {
	items, err := s.itemRepo.SearchByKeywords(ctx, keywords)
	if err != nil {
		pkglogger.GetLogger().Error().Err(err).Msg("item search failed")
		return []domain.ItemResult{}
	}

	items = FilterAndRankItems(items, keywords)

	if viewerID != "" {
		likedIDs, err := s.likeRepo.ListItemIDs(ctx, viewerID)
		if err != nil {
			pkglogger.GetLogger().Error().Err(err).Str("viewer_id", viewerID).Msg("liked set fetch failed")
		} else {
			items = AnnotateItems(items, domain.NewIDSet(likedIDs))
		}
	}

	return items
}

func (s *searchService) searchCatalogs(ctx context.Context, query, viewerID string) []domain.CatalogResult {
	catalogs, err := s.catalogRepo.SearchByName(ctx, query)
	if err != nil {
		pkglogger.GetLogger().Error().Err(err).Msg("catalog search failed")
		return []domain.CatalogResult{}
	}

	if viewerID != "" {
		bookmarkedIDs, err := s.bookmarkRepo.ListCatalogIDs(ctx, viewerID)
		if err != nil {
			pkglogger.GetLogger().Error().Err(err).Str("viewer_id", viewerID).Msg("bookmarked set fetch failed")
		} else {
			catalogs = AnnotateCatalogs(catalogs, domain.NewIDSet(bookmarkedIDs))
		}
	}

	return catalogs
}

func (s *searchService) searchProfiles(ctx context.Context, query string) []domain.ProfileResult {
	profiles, err := s.profileRepo.Search(ctx, query)
	if err != nil {
		pkglogger.GetLogger().Error().Err(err).Msg("profile search failed")
		return []domain.ProfileResult{}
	}
	return profiles
}

// Tokenize splits a query into lowercase whitespace-separated keywords.
// A whitespace-only query yields no tokens.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// DistinctMatches counts how many distinct keywords are substrings of
// haystack. Repeated occurrences of one keyword count once.
func DistinctMatches(haystack string, keywords []string) int {
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			matched++
		}
	}
	return matched
}

// FilterAndRankItems re-tests each item against the keywords and orders the
// survivors by descending distinct-keyword-match count over the combined
// "title seller" string. The sort is stable: ties keep the row order the
// database returned.
func FilterAndRankItems(items []domain.ItemResult, keywords []string) []domain.ItemResult {
	type ranked struct {
		item    domain.ItemResult
		matches int
	}

	kept := make([]ranked, 0, len(items))
	for _, item := range items {
		haystack := strings.ToLower(item.Title + " " + item.Seller)
		if n := DistinctMatches(haystack, keywords); n > 0 {
			kept = append(kept, ranked{item: item, matches: n})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].matches > kept[j].matches
	})

	result := make([]domain.ItemResult, len(kept))
	for i, r := range kept {
		result[i] = r.item
	}
	return result
}

// AnnotateItems marks each item whose id is in the viewer's liked set
func AnnotateItems(items []domain.ItemResult, liked domain.IDSet) []domain.ItemResult {
	for i := range items {
		items[i].IsLiked = liked.Has(items[i].ID)
	}
	return items
}

// AnnotateCatalogs marks each catalog whose id is in the viewer's
// bookmarked set
func AnnotateCatalogs(catalogs []domain.CatalogResult, bookmarked domain.IDSet) []domain.CatalogResult {
	for i := range catalogs {
		catalogs[i].IsBookmarked = bookmarked.Has(catalogs[i].ID)
	}
	return catalogs
}
