package web

// Topic is a static content page under /pages/:topic.
type Topic struct {
	Slug         string
	Heading      string
	Paragraphs   []string
	Byline       string
	Items        []TopicItem
	RequiresAuth bool
}

// TopicItem is one entry of a catalogue-style topic page.
type TopicItem struct {
	Name        string
	Description string
}

var topics = map[string]*Topic{
	"apples": {
		Slug:    "apples",
		Heading: "APPLES: The World's Healthiest Foods",
		Paragraphs: []string{
			"Apple trees are large if grown from seed. Generally, apple cultivars are propagated by grafting onto rootstocks, which control the size of the resulting tree. There are more than 7,500 known cultivars of apples, resulting in a range of desired characteristics.",
			"Different cultivars are bred for various tastes and use, including cooking, eating raw and cider production. Trees and fruit are prone to a number of fungal, bacterial and pest problems, which can be controlled by a number of organic and non-organic means.",
		},
		Byline: "Lyonchar",
	},
	"carrots": {
		Slug:    "carrots",
		Heading: "Carrots - The World's richest vitamin food source",
		Paragraphs: []string{
			"The carrot is a biennial plant in the umbellifer family Apiaceae. Fast-growing cultivars mature within three months of sowing the seed, while slower-maturing cultivars need a month longer.",
			"The roots contain high quantities of alpha- and beta-carotene, and are a good source of vitamin K and vitamin B6. Carrots are widely used in many cuisines, especially in the preparation of salads.",
		},
		Byline: "admin",
	},
	"oranges": {
		Slug:    "oranges",
		Heading: "Oranges - Sunshine in a peel",
		Paragraphs: []string{
			"Sweet oranges are grown in tropical and subtropical climates for their juicy fruit. They are an excellent source of vitamin C and dietary fibre.",
		},
		Byline: "admin",
	},
	"pineapples": {
		Slug:    "pineapples",
		Heading: "Pineapples - The tropical crown",
		Paragraphs: []string{
			"The pineapple is a tropical plant with an edible fruit. It grows as a small shrub; the individual flowers of the unpollinated plant fuse to form a multiple fruit.",
		},
		Byline: "admin",
	},
	"about": {
		Slug:    "about",
		Heading: "About Us",
		Paragraphs: []string{
			"Tropical Orchards and Gardens is a sub-Saharan company specialised in the farming and sale of market gardening crops and fruits.",
		},
		Byline: "admin",
	},
	"contact": {
		Slug:    "contact",
		Heading: "Contact Us",
		Paragraphs: []string{
			"Call us at 00237 675 879 800 or 00237 699 900 897.",
		},
		Byline: "admin",
	},
	"our_shop": {
		Slug:    "our_shop",
		Heading: "ENJOY OUR VARIETY",
		Items: []TopicItem{
			{Name: "Asparagus", Description: "Asparagus is a shoot vegetable: we eat the stalk and the tip. It is a good source of folate, which is important for healthy blood."},
			{Name: "Aubergine", Description: "Aubergines are teardrop-shaped with a glossy purple skin. They grow on bushes and are really fruits, although you wouldn't want to eat them raw."},
			{Name: "Banana", Description: "Bananas are a great source of energy and contain lots of vitamins and minerals, especially potassium. Eat them raw, baked, dried or in a smoothie."},
		},
		Byline:       "admin",
		RequiresAuth: true,
	},
}

// LookupTopic returns the topic page for slug.
func LookupTopic(slug string) (*Topic, bool) {
	t, ok := topics[slug]
	return t, ok
}
