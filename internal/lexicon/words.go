package lexicon

// Version identifies the revision of the word tables below.
const Version = "2024.1"

// profanity covers swearing, slurs, sexual slang, violence, drugs and a handful of other terms.
var profanity = []string{
	// common profanity
	"damn", "hell", "crap", "shit", "fuck", "fucking", "bitch", "ass", "bastard",
	"asshole", "piss", "bullshit", "wtf", "stfu", "motherfucker", "dickhead",

	// slurs and offensive terms
	"nigga", "nigger", "faggot", "retard", "slut", "whore", "cunt",

	// sexual
	"sex", "sexy", "horny", "pussy", "dick", "cock", "tits", "boobs", "porn",
	"masturbate", "orgasm", "climax", "cum", "cumming", "blow job", "blowjob",

	// violence
	"kill", "murder", "shoot", "gun", "bullet", "death", "die", "suicide",
	"rape", "abuse", "violence", "blood", "gore",

	// drugs and alcohol
	"weed", "marijuana", "cocaine", "crack", "heroin", "meth", "drugs",
	"high", "stoned", "drunk", "alcohol", "beer", "vodka", "whiskey",

	// other
	"gangsta", "thug", "pimp", "ho", "hoe", "stripper", "strip club",
}

var sexual = []string{
	"bedroom", "bed", "naked", "nude", "strip", "seduce", "tempt", "desire",
	"lust", "passion", "intimate", "sensual", "erotic", "sexual", "foreplay",
	"make love", "making love", "one night", "hookup", "booty call",
}

var violent = []string{
	"gang", "gangster", "criminal", "crime", "steal", "rob", "robbery",
	"fight", "fighting", "war", "battle", "weapon", "knife", "sword",
	"bomb", "explosion", "terrorist", "revenge", "enemy", "hate",
}

var drug = []string{
	"smoke", "smoking", "joint", "blunt", "bong", "pipe", "dealer",
	"party", "club", "rave", "molly", "ecstasy", "acid", "trip",
	"pills", "prescription", "addicted", "addiction",
}

var phrases = []string{
	"get high", "getting high", "smoke weed", "roll up", "light up",
	"one night stand", "booty call", "hook up", "make out",
	"gang violence", "drive by", "street life", "thug life",
	"strip club", "lap dance", "pole dance", "red light district",
}

var contextSensitive = []string{
	"hell", "damn", "ass", "sex", "kill", "die", "death", "gun", "shoot",
	"high", "blow", "strip", "crack", "weed", "smoke", "party",
}

// teenSafeProfanity is the hand-picked subset of profanity kept at [TeenSafe].
var teenSafeProfanity = []string{"fuck", "fucking", "shit", "bitch", "motherfucker"}

// Fixed keyword sets used for scoring and reason generation. They are narrower than the tables above.
var (
	heavyTerms   = []string{"fuck", "fucking", "shit", "bitch", "nigger", "faggot"}
	mildTerms    = []string{"damn", "hell", "ass", "crap"}
	sexualTerms  = []string{"sex", "sexy", "fuck", "cock", "pussy"}
	violentTerms = []string{"kill", "murder", "gun", "violence"}
	drugTerms    = []string{"weed", "cocaine", "drugs", "high"}
)
