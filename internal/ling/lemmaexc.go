//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package ling

// irregular forms; a form that maps to itself is protected from the detachment rules
var (
	nounexc = map[string]string{
		"children": "child", "men": "man", "women": "woman", "people": "person", "mice": "mouse",
		"geese": "goose", "feet": "foot", "teeth": "tooth", "oxen": "ox", "lice": "louse",
		"data": "datum", "criteria": "criterion", "phenomena": "phenomenon", "analyses": "analysis",
		"theses": "thesis", "crises": "crisis", "diagnoses": "diagnosis", "hypotheses": "hypothesis",
		"indices": "index", "matrices": "matrix", "vertices": "vertex", "axes": "axis",
		"bacteria": "bacterium", "media": "medium", "curricula": "curriculum", "fungi": "fungus",
		"nuclei": "nucleus", "radii": "radius", "stimuli": "stimulus", "alumni": "alumnus",
		"wives": "wife", "knives": "knife", "lives": "life", "leaves": "leaf", "halves": "half",
		"wolves": "wolf", "shelves": "shelf", "selves": "self", "thieves": "thief", "loaves": "loaf",
		"news": "news", "series": "series", "species": "species", "physics": "physics",
		"mathematics": "mathematics", "politics": "politics", "economics": "economics",
		"bus": "bus", "gas": "gas", "lens": "lens", "glass": "glass", "class": "class", "boss": "boss",
		"this": "this", "is": "is", "was": "was", "has": "has", "does": "does", "us": "us",
		"its": "its", "his": "his", "yes": "yes", "always": "always", "perhaps": "perhaps",
		"mets": "mets", "yankees": "yankees", "christmas": "christmas", "atlas": "atlas",
	}

	verbexc = map[string]string{
		"am": "be", "are": "be", "is": "be", "was": "be", "were": "be", "been": "be", "being": "be",
		"has": "have", "had": "have", "having": "have", "does": "do", "did": "do", "done": "do",
		"went": "go", "gone": "go", "goes": "go", "made": "make", "said": "say", "says": "say",
		"took": "take", "taken": "take", "came": "come", "saw": "see", "seen": "see", "knew": "know",
		"known": "know", "got": "get", "gotten": "get", "gave": "give", "given": "give",
		"found": "find", "thought": "think", "told": "tell", "became": "become", "left": "leave",
		"felt": "feel", "brought": "bring", "began": "begin", "begun": "begin", "kept": "keep",
		"held": "hold", "wrote": "write", "written": "write", "stood": "stand", "heard": "hear",
		"meant": "mean", "met": "meet", "ran": "run", "paid": "pay", "sat": "sit", "spoke": "speak",
		"spoken": "speak", "lay": "lie", "led": "lead", "grew": "grow", "grown": "grow", "lost": "lose",
		"fell": "fall", "fallen": "fall", "sent": "send", "built": "build", "understood": "understand",
		"drew": "draw", "drawn": "draw", "broke": "break", "broken": "break", "spent": "spend",
		"rose": "rise", "risen": "rise", "drove": "drive", "driven": "drive", "bought": "buy",
		"wore": "wear", "worn": "wear", "chose": "choose", "chosen": "choose", "sold": "sell",
		"flew": "fly", "flown": "fly", "flies": "fly", "won": "win", "taught": "teach", "caught": "catch",
		"fought": "fight", "threw": "throw", "thrown": "throw", "ate": "eat", "eaten": "eat",
		"slid": "slide", "shot": "shoot", "struck": "strike", "hid": "hide", "hidden": "hide",
		"forgot": "forget", "forgotten": "forget", "bred": "breed", "breeds": "breed", "fed": "feed",
		"slept": "sleep", "swam": "swim", "sang": "sing", "sung": "sing", "rang": "ring",
		"dying": "die", "lying": "lie", "tying": "tie", "blew": "blow", "blown": "blow",
	}

	adjexc = map[string]string{
		"better": "good", "best": "good", "worse": "bad", "worst": "bad", "more": "much",
		"most": "much", "less": "little", "least": "little", "further": "far", "farther": "far",
		"furthest": "far", "farthest": "far", "elder": "old", "eldest": "old",
	}

	advexc = map[string]string{
		"better": "well", "best": "well", "worse": "badly", "worst": "badly", "further": "far",
		"farther": "far", "more": "much", "most": "much", "less": "little", "least": "little",
	}
)
