package main

import "github.com/zzhang736/tripmap/internal/model"

// spotRecord is the server-side view of a spot: the client entity plus the
// fields the backend keeps but the list payload does not carry verbatim.
type spotRecord struct {
	model.Spot
	Category string
	Images   []string
}

// seedSpots returns a small Chengdu dataset clustered around the city center
// (104.07, 30.67) so nearby queries with the documented defaults hit results.
func seedSpots() []spotRecord {
	mk := func(id, name, desc, category, address, open, price string, ticket float64, lng, lat float64, tags []string, suggested string) spotRecord {
		s := model.Spot{
			ID:            id,
			Name:          name,
			Description:   desc,
			ShortDesc:     desc,
			Longitude:     lng,
			Latitude:      lat,
			Address:       address,
			OpenTime:      open,
			Price:         price,
			TicketPrice:   ticket,
			Tags:          tags,
			SuggestedTime: suggested,
		}
		s.Normalize()
		return spotRecord{Spot: s, Category: category}
	}

	return []spotRecord{
		mk("1", "Wuhou Shrine", "Temple complex honoring Zhuge Liang and the Shu Han kingdom.",
			"历史文化", "231 Wuhouci St", "08:00-18:00", "¥50", 50, 104.0478, 30.6465,
			[]string{"history", "temple"}, "2h"),
		mk("2", "Jinli Ancient Street", "Reconstructed old street with snacks, crafts and teahouses.",
			"古镇民俗", "Jinli St, Wuhou District", "all day", "free", 0, 104.0483, 30.6447,
			[]string{"food", "shopping"}, "3h"),
		mk("3", "Chengdu Panda Base", "Research and breeding base for giant pandas.",
			"自然风光", "1375 Panda Rd", "07:30-18:00", "¥55", 55, 104.1519, 30.7411,
			[]string{"nature", "family"}, "4h"),
		mk("4", "Kuanzhai Alley", "Three parallel alleys of Qing-era courtyards.",
			"古镇民俗", "Kuanzhai Alley, Qingyang District", "all day", "free", 0, 104.0553, 30.6697,
			[]string{"culture", "food"}, "2h"),
		mk("5", "Du Fu Thatched Cottage", "Memorial park on the site of the Tang poet's cottage.",
			"历史文化", "37 Qinghua Rd", "08:00-20:00", "¥50", 50, 104.0253, 30.6596,
			[]string{"history", "garden"}, "2h"),
		mk("6", "Tianfu Square", "Central plaza above the metro interchange.",
			"城市景观", "Tianfu Square, Qingyang District", "all day", "free", 0, 104.0652, 30.6574,
			[]string{"landmark"}, "1h"),
		mk("7", "Sichuan Museum", "Provincial museum with bronze, calligraphy and Tibetan art.",
			"艺术展馆", "251 Huanhuanan Rd", "09:00-17:00", "free", 0, 104.0293, 30.6608,
			[]string{"museum", "art"}, "2h"),
		mk("8", "Qingcheng Mountain", "Taoist mountain with trails and ancient temples.",
			"自然风光", "Qingcheng Mountain, Dujiangyan", "08:00-17:30", "¥80", 80, 103.5703, 30.9000,
			[]string{"nature", "hiking"}, "6h"),
	}
}

// matches reports whether the record matches a keyword search over the same
// fields production searches (name, description, address, category).
func (r spotRecord) matches(q string) bool {
	for _, f := range []string{r.Name, r.Description, r.Address, r.Category} {
		if containsFold(f, q) {
			return true
		}
	}
	return false
}
