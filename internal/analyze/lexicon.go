package analyze

// verbBases lists common English verb base forms. The statistical
// tagger mislabels third-person singular forms ("runs", "jumps") as
// plural nouns in short sentences; a token whose lemma is in this set
// is a candidate for re-classification.
var verbBases = map[string]bool{
	"accept": true, "add": true, "agree": true, "allow": true,
	"answer": true, "appear": true, "argue": true, "arrive": true,
	"ask": true, "bake": true, "bark": true, "bear": true,
	"beat": true, "become": true, "begin": true, "believe": true,
	"belong": true, "bite": true, "blow": true, "break": true,
	"bring": true, "build": true, "burn": true, "buy": true,
	"call": true, "carry": true, "catch": true, "change": true,
	"choose": true, "clean": true, "climb": true, "close": true,
	"come": true, "cook": true, "cost": true, "count": true,
	"cover": true, "create": true, "cry": true, "cut": true,
	"dance": true, "decide": true, "deliver": true, "describe": true,
	"die": true, "dig": true, "draw": true, "dream": true,
	"drink": true, "drive": true, "drop": true, "eat": true,
	"end": true, "enjoy": true, "enter": true, "exist": true,
	"explain": true, "fall": true, "feed": true, "feel": true,
	"fight": true, "fill": true, "find": true, "finish": true,
	"fit": true, "fix": true, "fly": true, "follow": true,
	"forget": true, "get": true, "give": true, "go": true,
	"grow": true, "hang": true, "happen": true, "hate": true,
	"hear": true, "help": true, "hide": true, "hit": true,
	"hold": true, "hope": true, "hunt": true, "hurt": true,
	"jump": true, "keep": true, "kick": true, "kill": true,
	"know": true, "laugh": true, "lead": true, "learn": true,
	"leave": true, "lend": true, "let": true, "lie": true,
	"like": true, "listen": true, "live": true, "look": true,
	"lose": true, "love": true, "make": true, "mean": true,
	"meet": true, "miss": true, "move": true, "need": true,
	"open": true, "own": true, "pay": true, "pick": true,
	"plan": true, "play": true, "point": true, "prefer": true,
	"pull": true, "push": true, "put": true, "rain": true,
	"reach": true, "read": true, "remember": true, "reply": true,
	"ride": true, "ring": true, "rise": true, "run": true,
	"say": true, "see": true, "seem": true, "sell": true,
	"send": true, "serve": true, "shine": true, "shout": true,
	"show": true, "shut": true, "sing": true, "sit": true,
	"sleep": true, "smell": true, "smile": true, "speak": true,
	"spend": true, "stand": true, "start": true, "stay": true,
	"stop": true, "study": true, "swim": true, "take": true,
	"talk": true, "teach": true, "tell": true, "think": true,
	"throw": true, "touch": true, "travel": true, "try": true,
	"turn": true, "understand": true, "use": true, "visit": true,
	"wait": true, "wake": true, "walk": true, "want": true,
	"wash": true, "watch": true, "wear": true, "win": true,
	"wish": true, "work": true, "write": true,
}
