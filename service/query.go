package service

import (
	"Foodnote/types"
	"sort"
	"strings"
	"time"
)

// 查询引擎：对 (photos, notes) 快照做过滤与分组，不修改入参

// Filter 关键字匹配地点、餐厅、菜名（不区分大小写），日期按自然日过滤，保持原有顺序
func Filter(photos []types.Photo, notes map[string]types.Note, c types.Criteria) []types.Photo {
	out := make([]types.Photo, 0, len(photos))
	search := strings.ToLower(c.SearchText)

	var from, to time.Time
	if c.Start != nil {
		loc := c.Loc
		if loc == nil {
			loc = time.Local
		}
		from = startOfDay(*c.Start, loc)
		last := from
		if c.End != nil {
			// 结束早于开始时区间为空，不交换
			last = startOfDay(*c.End, loc)
		}
		to = last.AddDate(0, 0, 1)
	}

	for _, p := range photos {
		if search != "" {
			n, ok := notes[p.ID]
			if !ok || !matchNote(n, search) {
				continue
			}
		}
		if c.Start != nil && (p.CreatedAt.Before(from) || !p.CreatedAt.Before(to)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchNote(n types.Note, lowered string) bool {
	return strings.Contains(strings.ToLower(n.Location), lowered) ||
		strings.Contains(strings.ToLower(n.Restaurant), lowered) ||
		strings.Contains(strings.ToLower(n.Name), lowered)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// GroupByLocation 先按地点再按餐厅分组；地点按字节升序，餐厅不区分大小写升序，哨兵排最后
func GroupByLocation(photos []types.Photo, notes map[string]types.Note) []types.LocationGroup {
	byLoc := make(map[string]map[string][]types.PhotoItem)
	counts := make(map[string]int)
	for _, p := range photos {
		item := itemOf(p, notes)
		location, restaurant := types.NoLocation, types.NoRestaurant
		if item.Note != nil {
			if item.Note.Location != "" {
				location = item.Note.Location
			}
			if item.Note.Restaurant != "" {
				restaurant = item.Note.Restaurant
			}
		}
		if byLoc[location] == nil {
			byLoc[location] = make(map[string][]types.PhotoItem)
		}
		byLoc[location][restaurant] = append(byLoc[location][restaurant], item)
		counts[location]++
	}

	locations := make([]string, 0, len(byLoc))
	for l := range byLoc {
		locations = append(locations, l)
	}
	sort.Slice(locations, func(i, j int) bool {
		return sentinelLast(locations[i], locations[j], types.NoLocation, func(a, b string) bool { return a < b })
	})

	groups := make([]types.LocationGroup, 0, len(locations))
	for _, l := range locations {
		restaurants := make([]string, 0, len(byLoc[l]))
		for r := range byLoc[l] {
			restaurants = append(restaurants, r)
		}
		sort.Slice(restaurants, func(i, j int) bool {
			return sentinelLast(restaurants[i], restaurants[j], types.NoRestaurant, lessFold)
		})

		g := types.LocationGroup{Location: l, Count: counts[l], Restaurants: make([]types.RestaurantGroup, 0, len(restaurants))}
		for _, r := range restaurants {
			items := byLoc[l][r]
			sortNewestFirst(items)
			g.Restaurants = append(g.Restaurants, types.RestaurantGroup{Restaurant: r, Photos: items})
		}
		groups = append(groups, g)
	}
	return groups
}

// GroupByRating 按评分从高到低，没有笔记的归为 0（Unrated），只返回非空分组
func GroupByRating(photos []types.Photo, notes map[string]types.Note) []types.RatingGroup {
	buckets := make(map[int][]types.PhotoItem)
	for _, p := range photos {
		item := itemOf(p, notes)
		rating := 0
		if item.Note != nil {
			rating = item.Note.Rating
		}
		buckets[rating] = append(buckets[rating], item)
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	groups := make([]types.RatingGroup, 0, len(keys))
	for _, k := range keys {
		items := buckets[k]
		sortNewestFirst(items)
		groups = append(groups, types.RatingGroup{Rating: k, Label: RatingLabel(k), Photos: items})
	}
	return groups
}

// RatingLabel 0 为 Unrated，其余为五角星
func RatingLabel(rating int) string {
	if rating <= 0 {
		return types.UnratedLabel
	}
	if rating > types.MaxRating {
		rating = types.MaxRating
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", types.MaxRating-rating)
}

// GroupByCountry 地点最后一个逗号后的部分视为国家；Unknown 不出现在地图上
func GroupByCountry(photos []types.Photo, notes map[string]types.Note, opts types.MapOptions) []types.CountryAnnotation {
	byCountry := make(map[string][]types.PhotoItem)
	order := make([]string, 0)
	for _, p := range photos {
		item := itemOf(p, notes)
		country := types.UnknownCountry
		if item.Note != nil {
			country = CountryOf(item.Note.Location)
		}
		if country == types.UnknownCountry {
			continue
		}
		if _, ok := byCountry[country]; !ok {
			order = append(order, country)
		}
		byCountry[country] = append(byCountry[country], item)
	}
	sort.Strings(order)

	out := make([]types.CountryAnnotation, 0, len(order))
	for _, country := range order {
		items := byCountry[country]
		coord, placed := pinFor(country, items)
		if !placed && opts.OmitUnplaced {
			continue
		}
		sortNewestFirst(items)
		out = append(out, types.CountryAnnotation{
			Country:    country,
			Coordinate: coord,
			Count:      len(items),
			Photos:     items,
		})
	}
	return out
}

// CountryOf 取最后一个非空的逗号分隔部分，去掉空白；没有时返回 Unknown
func CountryOf(location string) string {
	parts := strings.FieldsFunc(location, func(r rune) bool { return r == ',' })
	if len(parts) == 0 {
		return types.UnknownCountry
	}
	country := strings.TrimSpace(parts[len(parts)-1])
	if country == "" {
		return types.UnknownCountry
	}
	return country
}

// pinFor 优先使用组内第一个有坐标的笔记，其次国家中心点，最后是 (0,0)
func pinFor(country string, items []types.PhotoItem) (types.Coordinate, bool) {
	for _, it := range items {
		if it.Note == nil {
			continue
		}
		if c, ok := it.Note.Coordinate(); ok {
			return c, true
		}
	}
	if c, ok := CountryCentroid(country); ok {
		return c, true
	}
	return types.Coordinate{}, false
}

var countryCentroids = map[string]types.Coordinate{
	"India":          {Latitude: 20.5937, Longitude: 78.9629},
	"United States":  {Latitude: 37.0902, Longitude: -95.7129},
	"United Kingdom": {Latitude: 55.3781, Longitude: -3.4360},
	"France":         {Latitude: 46.2276, Longitude: 2.2137},
	"Germany":        {Latitude: 51.1657, Longitude: 10.4515},
	"Italy":          {Latitude: 41.8719, Longitude: 12.5674},
	"Spain":          {Latitude: 40.4637, Longitude: -3.7492},
	"Japan":          {Latitude: 36.2048, Longitude: 138.2529},
	"China":          {Latitude: 35.8617, Longitude: 104.1954},
	"Australia":      {Latitude: -25.2744, Longitude: 133.7751},
	"Canada":         {Latitude: 56.1304, Longitude: -106.3468},
	"Brazil":         {Latitude: -14.2350, Longitude: -51.9253},
	"Mexico":         {Latitude: 23.6345, Longitude: -102.5528},
	"Singapore":      {Latitude: 1.3521, Longitude: 103.8198},
	"Thailand":       {Latitude: 15.8700, Longitude: 100.9925},
	"UAE":            {Latitude: 23.4241, Longitude: 53.8478},
	"Philippines":    {Latitude: 12.8797, Longitude: 121.7740},
}

// CountryCentroid 内置的国家中心点，key 区分大小写
func CountryCentroid(country string) (types.Coordinate, bool) {
	c, ok := countryCentroids[country]
	return c, ok
}

func itemOf(p types.Photo, notes map[string]types.Note) types.PhotoItem {
	item := types.PhotoItem{Photo: p}
	if n, ok := notes[p.ID]; ok {
		item.Note = &n
	}
	return item
}

func sortNewestFirst(items []types.PhotoItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func sentinelLast(a, b, sentinel string, less func(a, b string) bool) bool {
	if a == sentinel {
		return false
	}
	if b == sentinel {
		return true
	}
	return less(a, b)
}

func lessFold(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}
