package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trovehq/trove-backend/internal/domain"
	"github.com/trovehq/trove-backend/internal/handler"
	"github.com/trovehq/trove-backend/internal/repository"
	"github.com/trovehq/trove-backend/internal/routes"
	"github.com/trovehq/trove-backend/internal/service"
	"github.com/trovehq/trove-backend/pkg/jwt"
)

const testAdminKey = "test-admin-key-for-integration"

// APISuite is an integration test suite for the /api/v1 endpoints
type APISuite struct {
	suite.Suite
	db            *gorm.DB
	router        *gin.Engine
	jwtManager    *jwt.Manager
	musicUpstream *httptest.Server
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	// Use SQLite for tests (no external DB dependency). The search endpoint
	// fans out concurrent queries, so pin the pool to a single connection:
	// every query sees the same in-memory database.
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	s.Require().NoError(db.Exec("PRAGMA foreign_keys = ON").Error)
	s.db = db

	s.Require().NoError(db.AutoMigrate(
		&domain.Profile{},
		&domain.Catalog{},
		&domain.Item{},
		&domain.Like{},
		&domain.Bookmark{},
	))

	s.jwtManager = jwt.NewManager("test-secret-key-for-integration-tests", time.Hour)

	// Music upstream stub
	s.musicUpstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{
			"id": 42,
			"title": "Integration Song",
			"preview": "https://cdn.example.com/preview/42.mp3",
			"link": "https://www.deezer.com/track/42",
			"duration": 180,
			"artist": {"name": "Test Artist"},
			"album": {"cover_medium": "https://cdn.example.com/cover/42.jpg"}
		}]}`))
	}))

	// An already-closed server: connections are refused immediately, which
	// exercises the fail-closed/fail-open moderation defaults.
	deadUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadUpstream.Close()

	// Repositories
	itemRepo := repository.NewItemRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	bookmarkRepo := repository.NewBookmarkRepository(db)
	clickRepo := repository.NewClickRepository(db)

	// Services (no Redis cache in tests)
	searchService := service.NewSearchService(itemRepo, catalogRepo, profileRepo, likeRepo, bookmarkRepo)
	likeService := service.NewLikeService(likeRepo, itemRepo)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, catalogRepo)
	catalogService := service.NewCatalogService(catalogRepo, itemRepo, profileRepo, bookmarkRepo, nil)
	clickService := service.NewClickService(clickRepo)
	moderationService := service.NewModerationService(deadUpstream.URL, deadUpstream.URL)
	musicService := service.NewMusicService(s.musicUpstream.URL)
	accountService := service.NewAccountService(profileRepo)

	s.router = gin.New()
	routes.Setup(s.router, routes.Handlers{
		Search:     handler.NewSearchHandler(searchService),
		Engagement: handler.NewEngagementHandler(likeService, bookmarkService),
		Catalog:    handler.NewCatalogHandler(catalogService),
		Click:      handler.NewClickHandler(clickService),
		Safety:     handler.NewSafetyHandler(moderationService),
		Music:      handler.NewMusicHandler(musicService),
		Account:    handler.NewAccountHandler(accountService),
	}, s.jwtManager, testAdminKey)

	s.seedTestData()
}

func (s *APISuite) TearDownSuite() {
	s.musicUpstream.Close()
}

func (s *APISuite) seedTestData() {
	profiles := []*domain.Profile{
		{ID: "p-alice", Username: "alice", DisplayName: "Alice Kim"},
		{ID: "p-bob", Username: "bob", DisplayName: "Bob Lee"},
		{ID: "p-doomed", Username: "doomed", DisplayName: "Soon Gone"},
	}
	for _, p := range profiles {
		s.Require().NoError(s.db.Create(p).Error)
	}

	catalogs := []*domain.Catalog{
		{ID: "c-blue", Name: "Blue Jacket Finds", Visibility: domain.VisibilityPublic, OwnerID: "p-alice"},
		{ID: "c-secret", Name: "Blue Jacket Stash", Visibility: domain.VisibilityPrivate, OwnerID: "p-alice"},
		{ID: "c-camp", Name: "Camping Gear", Visibility: domain.VisibilityPublic, OwnerID: "p-bob"},
		{ID: "c-doomed", Name: "Doomed Finds", Visibility: domain.VisibilityPublic, OwnerID: "p-doomed"},
	}
	for _, c := range catalogs {
		s.Require().NoError(s.db.Create(c).Error)
	}

	items := []*domain.Item{
		{ID: "i-denim", Title: "Blue Denim Jacket", Seller: "Acme", CatalogID: "c-blue", LikeCount: 1},
		{ID: "i-red", Title: "Red Jacket", Seller: "Acme", CatalogID: "c-blue"},
		{ID: "i-hidden", Title: "Blue Jacket Prototype", Seller: "Acme", CatalogID: "c-secret"},
		{ID: "i-tent", Title: "Four Season Tent", Seller: "Peak Supply", CatalogID: "c-camp"},
	}
	for _, i := range items {
		s.Require().NoError(s.db.Create(i).Error)
	}

	// alice already liked the denim jacket (matches its like_count)
	s.Require().NoError(s.db.Create(&domain.Like{ItemID: "i-denim", ProfileID: "p-alice"}).Error)
}

// --- Helpers ---

func (s *APISuite) tokenFor(userID, username string) string {
	token, err := s.jwtManager.GenerateToken(userID, username, 1)
	s.Require().NoError(err)
	return token
}

func (s *APISuite) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Search Tests ---

func (s *APISuite) TestSearch_PublicOnly() {
	w := s.do(http.MethodGet, "/api/v1/search?q=blue+jacket", nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	resp := decodeBody(s.T(), w)
	data := resp["data"].(map[string]interface{})

	items := data["items"].([]interface{})
	ids := make([]string, 0, len(items))
	for _, raw := range items {
		ids = append(ids, raw.(map[string]interface{})["id"].(string))
	}
	assert.Contains(s.T(), ids, "i-denim")
	assert.Contains(s.T(), ids, "i-red")
	assert.NotContains(s.T(), ids, "i-hidden", "items in private catalogs must never surface")

	catalogs := data["catalogs"].([]interface{})
	catalogIDs := make([]string, 0, len(catalogs))
	for _, raw := range catalogs {
		catalogIDs = append(catalogIDs, raw.(map[string]interface{})["id"].(string))
	}
	assert.Contains(s.T(), catalogIDs, "c-blue")
	assert.NotContains(s.T(), catalogIDs, "c-secret")
}

func (s *APISuite) TestSearch_RankOrdering() {
	w := s.do(http.MethodGet, "/api/v1/search?q=blue+jacket", nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	resp := decodeBody(s.T(), w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	s.Require().Len(items, 2)

	// "Blue Denim Jacket" matches both keywords, "Red Jacket" only one
	assert.Equal(s.T(), "i-denim", items[0].(map[string]interface{})["id"])
	assert.Equal(s.T(), "i-red", items[1].(map[string]interface{})["id"])
}

func (s *APISuite) TestSearch_WhitespaceQuery() {
	for _, path := range []string{"/api/v1/search?q=", "/api/v1/search?q=%20%20"} {
		w := s.do(http.MethodGet, path, nil, "")
		assert.Equal(s.T(), http.StatusOK, w.Code)

		resp := decodeBody(s.T(), w)
		data := resp["data"].(map[string]interface{})
		assert.Empty(s.T(), data["items"])
		assert.Empty(s.T(), data["catalogs"])
		assert.Empty(s.T(), data["profiles"])
	}
}

func (s *APISuite) TestSearch_ViewerAnnotation() {
	token := s.tokenFor("p-alice", "alice")

	w := s.do(http.MethodGet, "/api/v1/search?q=jacket", nil, token)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	resp := decodeBody(s.T(), w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})

	likedByID := map[string]bool{}
	for _, raw := range items {
		item := raw.(map[string]interface{})
		likedByID[item["id"].(string)] = item["is_liked"].(bool)
	}
	assert.True(s.T(), likedByID["i-denim"])
	assert.False(s.T(), likedByID["i-red"])
}

func (s *APISuite) TestSearch_ProfileMatch() {
	w := s.do(http.MethodGet, "/api/v1/search?q=alice", nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	resp := decodeBody(s.T(), w)
	profiles := resp["data"].(map[string]interface{})["profiles"].([]interface{})
	s.Require().Len(profiles, 1)

	profile := profiles[0].(map[string]interface{})
	assert.Equal(s.T(), "alice", profile["username"])
	// private catalog and its item are excluded from the counts
	assert.Equal(s.T(), float64(1), profile["catalog_count"])
	assert.Equal(s.T(), float64(2), profile["item_count"])
}

// --- Like Tests ---

func (s *APISuite) TestLikeToggle_TwiceRestoresState() {
	token := s.tokenFor("p-bob", "bob")

	w := s.do(http.MethodPost, "/api/v1/items/i-denim/like", nil, token)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	first := decodeBody(s.T(), w)["data"].(map[string]interface{})
	assert.True(s.T(), first["liked"].(bool))
	assert.Equal(s.T(), float64(2), first["like_count"])

	w = s.do(http.MethodPost, "/api/v1/items/i-denim/like", nil, token)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	second := decodeBody(s.T(), w)["data"].(map[string]interface{})
	assert.False(s.T(), second["liked"].(bool))
	assert.Equal(s.T(), float64(1), second["like_count"])
}

func (s *APISuite) TestLikeToggle_RequiresAuth() {
	w := s.do(http.MethodPost, "/api/v1/items/i-denim/like", nil, "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/items/i-denim/like", nil, "not-a-token")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *APISuite) TestLikeToggle_UnknownItem() {
	token := s.tokenFor("p-bob", "bob")

	w := s.do(http.MethodPost, "/api/v1/items/no-such-item/like", nil, token)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APISuite) TestMeLikes() {
	token := s.tokenFor("p-alice", "alice")

	w := s.do(http.MethodGet, "/api/v1/me/likes", nil, token)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	resp := decodeBody(s.T(), w)
	items := resp["data"].([]interface{})
	s.Require().Len(items, 1)

	item := items[0].(map[string]interface{})
	assert.Equal(s.T(), "i-denim", item["id"])
	assert.True(s.T(), item["is_liked"].(bool))
}

// --- Bookmark Tests ---

func (s *APISuite) TestBookmarkToggle_TwiceRestoresState() {
	token := s.tokenFor("p-alice", "alice")

	w := s.do(http.MethodPost, "/api/v1/catalogs/c-camp/bookmark", nil, token)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	first := decodeBody(s.T(), w)["data"].(map[string]interface{})
	assert.True(s.T(), first["bookmarked"].(bool))
	assert.Equal(s.T(), float64(1), first["bookmark_count"])

	w = s.do(http.MethodPost, "/api/v1/catalogs/c-camp/bookmark", nil, token)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	second := decodeBody(s.T(), w)["data"].(map[string]interface{})
	assert.False(s.T(), second["bookmarked"].(bool))
	assert.Equal(s.T(), float64(0), second["bookmark_count"])
}

func (s *APISuite) TestBookmarkToggle_PrivateCatalog() {
	token := s.tokenFor("p-bob", "bob")

	w := s.do(http.MethodPost, "/api/v1/catalogs/c-secret/bookmark", nil, token)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

// --- Browse Tests ---

func (s *APISuite) TestCatalogDetail() {
	w := s.do(http.MethodGet, "/api/v1/catalogs/c-blue", nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	resp := decodeBody(s.T(), w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(s.T(), "Blue Jacket Finds", data["name"])
	assert.Equal(s.T(), "alice", data["owner"].(map[string]interface{})["username"])
	assert.Len(s.T(), data["items"].([]interface{}), 2)
}

func (s *APISuite) TestCatalogDetail_PrivateHidden() {
	w := s.do(http.MethodGet, "/api/v1/catalogs/c-secret", nil, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APISuite) TestPopularCatalogs_PublicOnly() {
	w := s.do(http.MethodGet, "/api/v1/catalogs/popular", nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	resp := decodeBody(s.T(), w)
	catalogs := resp["data"].([]interface{})
	for _, raw := range catalogs {
		assert.NotEqual(s.T(), "c-secret", raw.(map[string]interface{})["id"])
	}
}

func (s *APISuite) TestProfilePage_NotFound() {
	w := s.do(http.MethodGet, "/api/v1/profiles/nobody", nil, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

// --- Click Tests ---

func (s *APISuite) TestClickTracking_Item() {
	w := s.do(http.MethodPost, "/api/v1/track-click", map[string]string{"itemId": "i-tent"}, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	first := decodeBody(s.T(), w)
	assert.True(s.T(), first["success"].(bool))
	firstCount := first["click_count"].(float64)

	w = s.do(http.MethodPost, "/api/v1/track-click", map[string]string{"itemId": "i-tent"}, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	second := decodeBody(s.T(), w)
	assert.Equal(s.T(), firstCount+1, second["click_count"].(float64))
}

func (s *APISuite) TestClickTracking_Catalog() {
	body := map[string]string{"itemId": "c-camp", "itemType": "catalog"}

	w := s.do(http.MethodPost, "/api/v1/track-click", body, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)
	resp := decodeBody(s.T(), w)
	assert.True(s.T(), resp["success"].(bool))

	var catalog domain.Catalog
	s.Require().NoError(s.db.First(&catalog, "id = ?", "c-camp").Error)
	assert.Equal(s.T(), int(resp["click_count"].(float64)), catalog.ClickCount)
}

func (s *APISuite) TestClickTracking_UnknownTarget() {
	w := s.do(http.MethodPost, "/api/v1/track-click", map[string]string{"itemId": "no-such-row"}, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APISuite) TestClickTracking_MissingItemID() {
	w := s.do(http.MethodPost, "/api/v1/track-click", map[string]string{"itemType": "catalog"}, "")
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

// --- Safety Tests ---

func (s *APISuite) TestSafetyCheckImage_UpstreamDownBlocks() {
	body := map[string]string{"image_url": "https://cdn.example.com/pic.jpg"}

	w := s.do(http.MethodPost, "/api/v1/safety/check-image", body, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	resp := decodeBody(s.T(), w)
	assert.False(s.T(), resp["safe"].(bool))
}

func (s *APISuite) TestSafetyCheckUsername_UpstreamDownAllows() {
	body := map[string]string{"username": "newuser42"}

	w := s.do(http.MethodPost, "/api/v1/safety/check-username", body, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	resp := decodeBody(s.T(), w)
	assert.True(s.T(), resp["safe"].(bool))
}

func (s *APISuite) TestSafetyCheckImage_MissingURL() {
	w := s.do(http.MethodPost, "/api/v1/safety/check-image", map[string]string{}, "")
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

// --- Music Tests ---

func (s *APISuite) TestMusicSearch() {
	w := s.do(http.MethodGet, "/api/v1/music/search?q=test", nil, "")
	assert.Equal(s.T(), http.StatusOK, w.Code)

	resp := decodeBody(s.T(), w)
	tracks := resp["tracks"].([]interface{})
	s.Require().Len(tracks, 1)

	track := tracks[0].(map[string]interface{})
	assert.Equal(s.T(), "Integration Song", track["trackName"])
	assert.Equal(s.T(), "Test Artist", track["artist"])
}

func (s *APISuite) TestMusicSearch_MissingQuery() {
	w := s.do(http.MethodGet, "/api/v1/music/search", nil, "")
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

// --- Admin Tests ---

func (s *APISuite) TestAdminDelete_RequiresKey() {
	body := map[string]string{"userId": "p-doomed"}

	w := s.do(http.MethodPost, "/api/v1/admin/accounts/delete", body, "")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/admin/accounts/delete", body, "wrong-key")
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *APISuite) TestAdminDelete_UnknownUser() {
	body := map[string]string{"userId": "no-such-user"}

	w := s.do(http.MethodPost, "/api/v1/admin/accounts/delete", body, testAdminKey)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *APISuite) TestAdminDelete_CascadesOwnedData() {
	body := map[string]string{"userId": "p-doomed"}

	w := s.do(http.MethodPost, "/api/v1/admin/accounts/delete", body, testAdminKey)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/profiles/doomed", nil, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/catalogs/c-doomed", nil, "")
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}
