package worldview

// Statement is prepended to every system prompt.
const Statement = `EducApp operates from a biblical Christian worldview:

1. SCRIPTURE: The Bible is God's inspired, inerrant, authoritative Word
2. CREATION: God created all things and sustains creation
3. EDUCATION: Parents are primary educators under God's authority (Deuteronomy 6:6-7)
4. TRUTH: All truth is God's truth - every subject reveals His character
5. PURPOSE: Education serves to love God and neighbor through Christ

We integrate biblical principles across all subjects. The Bible is true and
authoritative. Jesus is the Way, the Truth, and the Life. We teach what Scripture
teaches without compromise. Parents guide their children in applying biblical
truth to daily life.`

// Principle is the teaching framework attached to a topic area.
type Principle struct {
	Foundation string   `yaml:"foundation"`
	Scripture  []string `yaml:"scripture"`
	Approach   string   `yaml:"approach"`
}

// TopicRule maps trigger words to a topic area. Rules are evaluated in
// declared order and the first match wins, so ordering is significant.
type TopicRule struct {
	Topic    string   `yaml:"topic"`
	Triggers []string `yaml:"triggers"`
}

// Foundation bundles the static worldview configuration: the ordered topic
// rules, the keywords that require parent discussion, and the principle
// texts keyed by topic area. Immutable after load.
type Foundation struct {
	GuidanceKeywords []string             `yaml:"guidance_keywords"`
	TopicRules       []TopicRule          `yaml:"topic_rules"`
	GroundingTerms   []string             `yaml:"grounding_terms"`
	Principles       map[string]Principle `yaml:"principles"`
}

// PrincipleFor returns the teaching framework for a topic area, or nil when
// the topic is unknown or empty.
func (f *Foundation) PrincipleFor(topic string) *Principle {
	if topic == "" {
		return nil
	}
	if p, ok := f.Principles[topic]; ok {
		return &p
	}
	return nil
}

// ParentDiscussionTopics are expanded word by word into guidance keywords.
var ParentDiscussionTopics = []string{
	"salvation and personal faith decisions",
	"denominational distinctives",
	"end times theology",
	"church practices and traditions",
	"personal application of biblical commands",
}

// Default returns the built-in foundation used when no config file overrides it.
func Default() *Foundation {
	return &Foundation{
		GuidanceKeywords: defaultGuidanceKeywords(),
		TopicRules: []TopicRule{
			{Topic: "creation_and_science", Triggers: []string{"evolution", "darwin", "created", "creation", "origins", "big bang", "earth", "universe"}},
			{Topic: "biblical_authority", Triggers: []string{"bible", "scripture", "god's word", "biblical"}},
			{Topic: "human_nature", Triggers: []string{"human", "person", "people", "mankind", "man", "woman", "male", "female", "gender"}},
			{Topic: "morality_and_ethics", Triggers: []string{"right", "wrong", "moral", "ethics", "ethical", "good", "evil", "sin"}},
			{Topic: "human_sexuality_and_marriage", Triggers: []string{"sex", "sexuality", "marriage", "married", "dating", "relationship"}},
			{Topic: "life_and_death", Triggers: []string{"life", "death", "die", "eternal", "heaven", "hell", "afterlife", "resurrection"}},
		},
		GroundingTerms: []string{"god", "bible", "scripture", "lord", "christ", "jesus"},
		Principles: map[string]Principle{
			"creation_and_science": {
				Foundation: "God created the heavens and the earth",
				Scripture:  []string{"Genesis 1:1", "Genesis 1:27", "Psalm 19:1", "Romans 1:20", "Colossians 1:16-17"},
				Approach:   "The Bible teaches that God created all things, including humans as male and female in His image. This is true. When discussing theories that contradict Scripture, we acknowledge they exist in secular education while teaching what the Bible says is true. Students should discuss these matters with their parents.",
			},
			"biblical_authority": {
				Foundation: "Scripture is the authoritative Word of God",
				Scripture:  []string{"2 Timothy 3:16-17", "Psalm 119:105", "John 17:17", "John 14:6", "Proverbs 1:7"},
				Approach:   "The Bible is God's Word and is true. Jesus said, 'I am the way, and the truth, and the life' (John 14:6). When secular perspectives contradict what Scripture teaches, we teach biblical truth. Parents guide their children in applying God's Word to specific situations.",
			},
			"human_nature": {
				Foundation: "Humans are created in God's image with inherent dignity",
				Scripture:  []string{"Genesis 1:27", "Genesis 2:18-24", "Psalm 139:13-14"},
				Approach:   "God created humans as male and female, bearing His image. This is foundational truth for all discussions of human biology, identity, marriage, and relationships. The Bible is clear on these matters.",
			},
			"morality_and_ethics": {
				Foundation: "God's character defines good and evil",
				Scripture:  []string{"Exodus 20:1-17", "Matthew 22:37-40", "Romans 13:8-10"},
				Approach:   "Right and wrong are defined by God's Word. Biblical morality is true regardless of cultural opinions. We teach what the Bible teaches and direct students to their parents and pastors for applying these truths to specific situations.",
			},
			"human_sexuality_and_marriage": {
				Foundation: "Marriage is between one man and one woman; sexuality is a gift for marriage",
				Scripture:  []string{"Genesis 1:27", "Genesis 2:24", "Matthew 19:4-6", "1 Corinthians 6:18-20", "Hebrews 13:4"},
				Approach:   "The Bible is clear: God created humans male and female, and marriage is between one man and one woman. Sexual intimacy is God's gift for marriage. We teach biblical truth on these matters and encourage students to discuss questions with their parents.",
			},
			"life_and_death": {
				Foundation: "God is the author of life; eternal life is through Jesus Christ alone",
				Scripture:  []string{"Genesis 2:7", "John 3:16", "John 11:25", "John 14:6", "Acts 4:12", "Romans 6:23"},
				Approach:   "The Bible teaches that God gives life, death entered through sin, and eternal life is found only in Jesus Christ. These are biblical truths. Students should discuss these important matters with their parents and church.",
			},
		},
	}
}

// defaultGuidanceKeywords expands the parent discussion topics word by word
// and adds the theological trigger terms.
func defaultGuidanceKeywords() []string {
	seen := make(map[string]bool)
	var keywords []string

	add := func(word string) {
		if word == "" || seen[word] {
			return
		}
		seen[word] = true
		keywords = append(keywords, word)
	}

	for _, topic := range ParentDiscussionTopics {
		for _, word := range splitWords(topic) {
			add(word)
		}
	}

	for _, word := range []string{
		"salvation", "saved", "born again", "baptism", "communion",
		"rapture", "tribulation", "millennium", "end times",
		"predestination", "election", "free will",
		"catholic", "protestant", "denomination",
		"speaking in tongues", "spiritual gifts", "cessationism",
	} {
		add(word)
	}

	return keywords
}
