package persona

import (
	"math/rand/v2"
	"strings"
)

// Demographic attributes of a simulated respondent.
type Demographic struct {
	Age            Attribute `yaml:"age"`
	Gender         Attribute `yaml:"gender"`
	IncomeLevel    Attribute `yaml:"income_level"`
	EducationLevel Attribute `yaml:"education_level"`
	MaritalStatus  Attribute `yaml:"marital_status"`
	HouseholdSize  Attribute `yaml:"household_size"`
	ChildrenCount  Attribute `yaml:"children_count"`
	Occupation     Attribute `yaml:"occupation"`
}

// Geographic attributes of a simulated respondent.
type Geographic struct {
	Country    Attribute `yaml:"country"`
	Region     Attribute `yaml:"region"`
	Urbanicity Attribute `yaml:"urbanicity"`
	Climate    Attribute `yaml:"climate"`
}

// Psychographic attributes of a simulated respondent.
type Psychographic struct {
	Lifestyle   Attribute `yaml:"lifestyle"`
	Values      Attribute `yaml:"values"`
	Personality Attribute `yaml:"personality"`
	Interests   Attribute `yaml:"interests"`
}

// Behavioral attributes of a simulated respondent.
type Behavioral struct {
	PurchaseFrequency  Attribute `yaml:"purchase_frequency"`
	BrandLoyalty       Attribute `yaml:"brand_loyalty"`
	PurchaseChannel    Attribute `yaml:"purchase_channel"`
	CategoryExperience Attribute `yaml:"category_experience"`
}

// Technographic attributes of a simulated respondent.
type Technographic struct {
	Devices      Attribute `yaml:"devices"`
	SocialMedia  Attribute `yaml:"social_media"`
	TechAdoption Attribute `yaml:"tech_adoption"`
}

// Spec is the full persona configuration: five fixed attribute categories
// plus optional overrides of the per-attribute sentence templates, keyed by
// dotted path ("demographic.age"). A Spec is built once per run and then
// sampled once per respondent; it is not mutated by sampling.
type Spec struct {
	Demographic   Demographic   `yaml:"demographic"`
	Geographic    Geographic    `yaml:"geographic"`
	Psychographic Psychographic `yaml:"psychographic"`
	Behavioral    Behavioral    `yaml:"behavioral"`
	Technographic Technographic `yaml:"technographic"`

	// Templates overrides defaultTemplates per dotted path. Each template
	// carries a single {attribute} slot named after the attribute.
	Templates map[string]string `yaml:"templates,omitempty"`
}

// attribute pairs an attribute name with its sampling rule, preserving
// declaration order within a category.
type attribute struct {
	name string
	spec Attribute
}

// category pairs a category name with its ordered attributes. Biography
// generation walks categories in this fixed order.
type category struct {
	name  string
	attrs []attribute
}

func (s *Spec) categories() []category {
	return []category{
		{"demographic", []attribute{
			{"age", s.Demographic.Age},
			{"gender", s.Demographic.Gender},
			{"income_level", s.Demographic.IncomeLevel},
			{"education_level", s.Demographic.EducationLevel},
			{"marital_status", s.Demographic.MaritalStatus},
			{"household_size", s.Demographic.HouseholdSize},
			{"children_count", s.Demographic.ChildrenCount},
			{"occupation", s.Demographic.Occupation},
		}},
		{"geographic", []attribute{
			{"country", s.Geographic.Country},
			{"region", s.Geographic.Region},
			{"urbanicity", s.Geographic.Urbanicity},
			{"climate", s.Geographic.Climate},
		}},
		{"psychographic", []attribute{
			{"lifestyle", s.Psychographic.Lifestyle},
			{"values", s.Psychographic.Values},
			{"personality", s.Psychographic.Personality},
			{"interests", s.Psychographic.Interests},
		}},
		{"behavioral", []attribute{
			{"purchase_frequency", s.Behavioral.PurchaseFrequency},
			{"brand_loyalty", s.Behavioral.BrandLoyalty},
			{"purchase_channel", s.Behavioral.PurchaseChannel},
			{"category_experience", s.Behavioral.CategoryExperience},
		}},
		{"technographic", []attribute{
			{"devices", s.Technographic.Devices},
			{"social_media", s.Technographic.SocialMedia},
			{"tech_adoption", s.Technographic.TechAdoption},
		}},
	}
}

// defaultTemplates maps dotted attribute paths to biography sentences.
// Wording can change here without touching the sampling logic, and new
// attributes only need a schema field plus one entry.
var defaultTemplates = map[string]string{
	"demographic.age":             "You are {age} years old.",
	"demographic.gender":          "You identify as {gender}.",
	"demographic.income_level":    "You have a {income_level} income level.",
	"demographic.education_level": "Your highest education level is {education_level}.",
	"demographic.marital_status":  "You are {marital_status}.",
	"demographic.household_size":  "Your household consists of {household_size} people.",
	"demographic.children_count":  "You have {children_count} children.",
	"demographic.occupation":      "You work as a {occupation}.",

	"geographic.country":    "You live in {country}.",
	"geographic.region":     "Your region is {region}.",
	"geographic.urbanicity": "You live in a(n) {urbanicity} area.",
	"geographic.climate":    "Your local climate is {climate}.",

	"psychographic.lifestyle":   "Your lifestyle is {lifestyle}.",
	"psychographic.values":      "You value {values}.",
	"psychographic.personality": "Your personality is {personality}.",
	"psychographic.interests":   "Your interests include {interests}.",

	"behavioral.purchase_frequency":  "You are a {purchase_frequency} buyer in this category.",
	"behavioral.brand_loyalty":       "You are a {brand_loyalty} when it comes to brands.",
	"behavioral.purchase_channel":    "You typically buy via {purchase_channel}.",
	"behavioral.category_experience": "Your experience with this category is {category_experience}.",

	"technographic.devices":       "You regularly use: {devices}.",
	"technographic.social_media":  "Your preferred social platforms include: {social_media}.",
	"technographic.tech_adoption": "You are a {tech_adoption} of technology.",
}

// template returns the sentence template for a dotted path, preferring a
// per-spec override. An empty result means the attribute renders nothing.
func (s *Spec) template(path string) string {
	if t, ok := s.Templates[path]; ok {
		return t
	}
	return defaultTemplates[path]
}

// Biography samples one persona from the spec using rng and renders it as
// a single paragraph: one sentence per present attribute, in fixed category
// order then declaration order, space-joined. An all-absent spec yields "".
func (s *Spec) Biography(rng *rand.Rand) string {
	var parts []string
	for _, cat := range s.categories() {
		for _, attr := range cat.attrs {
			v := attr.spec.Sample(rng)
			if v == nil {
				continue
			}
			tmpl := s.template(cat.name + "." + attr.name)
			if tmpl == "" {
				continue
			}
			slot := "{" + attr.name + "}"
			parts = append(parts, strings.ReplaceAll(tmpl, slot, formatValue(v)))
		}
	}
	return strings.Join(parts, " ")
}

// GenerateBiography samples a biography with fresh entropy. Successive
// calls are independent draws.
func (s *Spec) GenerateBiography() string {
	return s.Biography(rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// GenerateBiographySeed samples a biography reproducibly: the same seed
// and spec yield a byte-identical paragraph. The generator is created per
// call, so one call's draws never leak into the next.
func (s *Spec) GenerateBiographySeed(seed uint64) string {
	return s.Biography(rand.New(rand.NewPCG(seed, 0)))
}
