// Package temple tags Hindu temples with tradition classifications
// (Jyotirlinga, Divya Desam, ...) and a presiding deity, by keyword and
// name matching against a curated reference table.
package temple

import "strings"

// Group is one classification in the reference table. Temples are
// matched against the place name; Keywords are matched against the
// combined name and address. ExactMatch requires whole-word agreement
// rather than bare substring containment.
type Group struct {
	Tag        string   `yaml:"tag"`
	ExactMatch bool     `yaml:"exact_match"`
	Temples    []string `yaml:"temples"`
	Keywords   []string `yaml:"keywords"`
}

// defaultGroups is the built-in classification table. Order matters:
// tags are emitted in table order.
var defaultGroups = []Group{
	{
		Tag:      "Divya Desam",
		Keywords: []string{"sri rangam", "tirupati", "tirumala", "badrinath", "dwarka", "puri jagannath", "kanchipuram", "ayodhya"},
		Temples: []string{
			"Srirangam", "Tirupati", "Tirumala", "Badrinath", "Dwarka", "Puri",
			"Kanchipuram Varadaraja", "Ayodhya", "Thiruvananthapuram",
		},
	},
	{
		Tag:        "Jyotirlinga",
		ExactMatch: true,
		Temples: []string{
			"Somnath", "Mallikarjuna", "Mahakaleshwar", "Omkareshwar", "Kedarnath",
			"Bhimashankar", "Kashi Vishwanath", "Trimbakeshwar", "Vaidyanath",
			"Nageshwar", "Rameswaram", "Rameshwar", "Grishneshwar",
		},
	},
	{
		Tag:        "Pancha Bhoota",
		ExactMatch: true,
		Temples: []string{
			"Chidambaram Nataraja",
			"Thiruvanaikaval", "Jambukeswarar",
			"Tiruvannamalai", "Annamalaiyar",
			"Ekambareswarar", "Ekambaranathar",
			"Kalahasti", "Srikalahasti",
		},
	},
	{
		Tag: "Shakti Peetham",
		Temples: []string{
			"Kamakhya", "Kalighat", "Vindhyavasini", "Ambaji", "Chamundeshwari",
			"Mookambika", "Kanchi Kamakshi", "Meenakshi",
		},
	},
	{
		Tag:      "Abhimana Sthalam",
		Keywords: []string{"brihadeeswarar", "brihadeeswara", "thanjavur", "gangaikonda"},
		Temples: []string{
			"Brihadeeswarar", "Brihadeeswara", "Gangaikonda Cholapuram", "Airavatesvara",
		},
	},
	{
		Tag:     "Char Dham",
		Temples: []string{"Badrinath", "Dwarka", "Puri", "Rameshwar", "Rameswaram"},
	},
}

// deityEntry pairs a deity with its name keywords. Evaluated in order;
// the first match wins.
type deityEntry struct {
	deity    string
	keywords []string
}

var deityTable = []deityEntry{
	{"Vishnu", []string{"rangam", "venkatesh", "tirupati", "badrinath", "jagannath", "varadaraja"}},
	{"Shiva", []string{"shwar", "ishwar", "nataraja", "kailash", "somnath", "mahakal", "kedarnath"}},
	{"Devi", []string{"kamakshi", "meenakshi", "kamakhya", "ambika", "chamundi", "durga", "kali"}},
	{"Hanuman", []string{"hanuman", "anjaneya"}},
	{"Ganesha", []string{"ganesha", "ganapati", "vinayaka"}},
}

// Classifier matches place names against a classification table.
type Classifier struct {
	groups []Group
}

// NewClassifier returns a classifier using the built-in table.
func NewClassifier() *Classifier {
	return &Classifier{groups: defaultGroups}
}

// NewClassifierWithGroups returns a classifier over a custom table,
// used when an override file is loaded.
func NewClassifierWithGroups(groups []Group) *Classifier {
	return &Classifier{groups: groups}
}

// Classify returns the tags applicable to a temple name and optional
// address, in table order. A group contributes its tag at most once;
// empty input yields no tags.
func (c *Classifier) Classify(name, addr string) []string {
	var tags []string
	nameLower := strings.ToLower(name)
	combined := nameLower + " " + strings.ToLower(addr)

	for _, group := range c.groups {
		matched := false

		for _, temple := range group.Temples {
			templeLower := strings.ToLower(temple)
			if group.ExactMatch {
				if wholeWordMatch(nameLower, templeLower) {
					matched = true
					break
				}
			} else if strings.Contains(nameLower, templeLower) {
				matched = true
				break
			}
		}

		if !matched {
			for _, keyword := range group.Keywords {
				if strings.Contains(combined, strings.ToLower(keyword)) {
					matched = true
					break
				}
			}
		}

		if matched {
			tags = append(tags, group.Tag)
		}
	}

	return tags
}

// wholeWordMatch reports whether any word of the name equals the
// reference name, or is a long (>4 char) word contained in it. This
// keeps short shared words like "Rama" from tagging unrelated temples.
func wholeWordMatch(nameLower, templeLower string) bool {
	for _, word := range strings.Fields(nameLower) {
		if word == templeLower {
			return true
		}
		if len(word) > 4 && strings.Contains(templeLower, word) {
			return true
		}
	}
	return false
}

// Deity returns the presiding deity inferred from the temple name, or
// "" when none of the known keywords appear. Table order decides when
// a name matches several deities.
func (c *Classifier) Deity(name string) string {
	nameLower := strings.ToLower(name)

	for _, entry := range deityTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(nameLower, keyword) {
				return entry.deity
			}
		}
	}

	return ""
}
