package scraft

import (
	"strings"
	"testing"
)

const listingPage = `<html><body>
<ul class="wallpapers">
  <li class="wallpapers__item">
    <a href="/wallpaper/city_night_lights_12345">
      <img src="/thumb/12345.jpg" alt="Wallpaper City, Night, Lights">
    </a>
    <span class="wallpapers__info-rating">7.4</span>
  </li>
  <li class="wallpapers__item">
    <a href="/wallpaper/river_forest_67890/">
      <img src="/thumb/67890.jpg" alt="Wallpaper River, Forest">
    </a>
    <span class="wallpapers__info-rating">8.9</span>
  </li>
  <li class="wallpapers__item">
    <img src="/thumb/orphan.jpg" alt="Wallpaper Orphan">
  </li>
</ul>
</body></html>`

func TestParseListing(t *testing.T) {
	records, err := parseListing(strings.NewReader(listingPage), "city")
	if err != nil {
		t.Fatalf("parseListing() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("parseListing() returned %d records, want 2 (item without link skipped)", len(records))
	}

	first := records[0]
	if first.ID != "city_night_lights_12345" {
		t.Errorf("ID = %s, want city_night_lights_12345", first.ID)
	}
	if first.Catalog != "city" {
		t.Errorf("Catalog = %s, want city", first.Catalog)
	}
	if len(first.Tags) != 3 || first.Tags[0] != "city" || first.Tags[1] != "night" || first.Tags[2] != "lights" {
		t.Errorf("Tags = %v, want [city night lights]", first.Tags)
	}
	if first.Score != 7.4 {
		t.Errorf("Score = %g, want 7.4", first.Score)
	}

	if records[1].ID != "river_forest_67890" {
		t.Errorf("ID = %s, want trailing slash stripped", records[1].ID)
	}
}

func TestParsePageCountPathPager(t *testing.T) {
	page := `<html><body>
<ul class="pager__list">
  <li><a class="pager__link" href="/catalog/city/1920x1080/page2">2</a></li>
  <li><a class="pager__link" href="/catalog/city/1920x1080/page3">3</a></li>
  <li><a class="pager__link" href="/catalog/city/1920x1080/page117">117</a></li>
</ul>
</body></html>`

	count, err := parsePageCount(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsePageCount() error = %v", err)
	}
	if count != 117 {
		t.Errorf("parsePageCount() = %d, want 117", count)
	}
}

func TestParsePageCountQueryPager(t *testing.T) {
	page := `<html><body>
<ul class="pager__list">
  <li><a class="pager__link" href="/search/?query=sky&size=1920x1080&page=2">2</a></li>
  <li><a class="pager__link" href="/search/?query=sky&size=1920x1080&page=42">42</a></li>
</ul>
</body></html>`

	count, err := parsePageCount(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parsePageCount() error = %v", err)
	}
	if count != 42 {
		t.Errorf("parsePageCount() = %d, want 42", count)
	}
}

func TestParsePageCountNoPager(t *testing.T) {
	count, err := parsePageCount(strings.NewReader(`<html><body><p>one page</p></body></html>`))
	if err != nil {
		t.Fatalf("parsePageCount() error = %v", err)
	}
	if count != 1 {
		t.Errorf("parsePageCount() = %d, want 1 for pagerless listing", count)
	}
}

func TestParseWallpaperTags(t *testing.T) {
	page := `<html><body>
<div class="wallpaper__tags">
  <a href="/tag/city">city wallpapers</a>
  <a href="/tag/night">night backgrounds</a>
  <a href="/tag/lights">lights</a>
</div>
</body></html>`

	tags, err := parseWallpaperTags(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parseWallpaperTags() error = %v", err)
	}
	want := []string{"city", "night", "lights"}
	if len(tags) != len(want) {
		t.Fatalf("parseWallpaperTags() = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %s, want %s", i, tags[i], want[i])
		}
	}
}

func TestParseWallpaperTagsMissingBlock(t *testing.T) {
	tags, err := parseWallpaperTags(strings.NewReader(`<html><body></body></html>`))
	if err != nil {
		t.Fatalf("parseWallpaperTags() error = %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("parseWallpaperTags() = %v, want empty", tags)
	}
}

func TestParseImageURL(t *testing.T) {
	page := `<html><body>
<img class="wallpaper__image" src="https://images.wallpaperscraft.com/image/single/city_night_12345_1920x1080.jpg">
</body></html>`

	url, err := parseImageURL(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parseImageURL() error = %v", err)
	}
	want := baseURL + "/image/city_night_12345_1920x1080.jpg"
	if url != want {
		t.Errorf("parseImageURL() = %s, want %s", url, want)
	}
}

func TestParseImageURLMissingImage(t *testing.T) {
	if _, err := parseImageURL(strings.NewReader(`<html><body></body></html>`)); err == nil {
		t.Errorf("parseImageURL() error = nil, want error for missing image")
	}
}

func TestIDFromHref(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"/wallpaper/city_night_12345", "city_night_12345"},
		{"/wallpaper/city_night_12345/", "city_night_12345"},
		{"city_night_12345", "city_night_12345"},
	}
	for _, tt := range tests {
		if got := idFromHref(tt.href); got != tt.want {
			t.Errorf("idFromHref(%q) = %s, want %s", tt.href, got, tt.want)
		}
	}
}

func TestTagsFromAlt(t *testing.T) {
	tags := tagsFromAlt("Wallpaper City, Night Sky, , Lights")
	want := []string{"city", "night sky", "lights"}
	if len(tags) != len(want) {
		t.Fatalf("tagsFromAlt() = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %s, want %s", i, tags[i], want[i])
		}
	}

	if got := tagsFromAlt(""); len(got) != 0 {
		t.Errorf("tagsFromAlt(empty) = %v, want empty", got)
	}
}
