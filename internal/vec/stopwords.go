//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vec

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/e-gun/CorpusWorkshop/internal/gen"
	"github.com/e-gun/CorpusWorkshop/internal/lnch"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
)

var Msg = lnch.NewMessageMakerWithDefaults()

//
// STOPWORDS
//

// readstopconfig - read the vv.CONFIGSTOPSENGLISH file in dir and return []stopwords; if it does not exist, generate it
func readstopconfig(dir string) []string {
	const (
		ERR1 = "readstopconfig() failed to parse "
		ERR2 = "readstopconfig() could not write "
		MSG1 = "readstopconfig() wrote stop word configuration file: "
	)

	stops := slices.Clone(EnglishStops)
	fn := filepath.Join(dir, vv.CONFIGSTOPSENGLISH)

	if _, err := os.Stat(fn); err != nil {
		slices.Sort(stops)
		content, e := json.MarshalIndent(stops, vv.JSONINDENT, vv.JSONINDENT)
		if e == nil {
			e = os.WriteFile(fn, content, vv.WRITEPERMS)
		}
		if e != nil {
			Msg.WARN(ERR2 + fn)
		} else {
			Msg.PEEK(MSG1 + vv.CONFIGSTOPSENGLISH)
		}
		return stops
	}

	content, err := os.ReadFile(fn)
	var stp []string
	if err == nil {
		err = json.Unmarshal(content, &stp)
	}
	if err != nil {
		Msg.CRIT(ERR1 + fn)
		return stops
	}
	return stp
}

// StopWords - the English list, or the user's own version of it from the config dir
func StopWords() []string {
	h, err := os.UserHomeDir()
	if err != nil {
		return slices.Clone(EnglishStops)
	}
	dir := fmt.Sprintf(vv.CONFIGALTAPTH, h)
	if _, err = os.Stat(dir); err != nil {
		return slices.Clone(EnglishStops)
	}
	return readstopconfig(dir)
}

// StopSet - StopWords() plus any extras as a set
func StopSet(extra ...string) map[string]struct{} {
	return gen.ToSet(append(StopWords(), extra...))
}

// EnglishStops - the conventional English stop list used by most vectorisers
var EnglishStops = []string{"a", "about", "above", "across", "after", "afterwards", "again", "against", "all",
	"almost", "alone", "along", "already", "also", "although", "always", "am", "among", "amongst", "amoungst",
	"amount", "an", "and", "another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are",
	"around", "as", "at", "back", "be", "became", "because", "become", "becomes", "becoming", "been", "before",
	"beforehand", "behind", "being", "below", "beside", "besides", "between", "beyond", "bill", "both",
	"bottom", "but", "by", "call", "can", "cannot", "cant", "co", "con", "could", "couldnt", "cry", "de",
	"describe", "detail", "do", "done", "down", "due", "during", "each", "eg", "eight", "either", "eleven",
	"else", "elsewhere", "empty", "enough", "etc", "even", "ever", "every", "everyone", "everything",
	"everywhere", "except", "few", "fifteen", "fifty", "fill", "find", "fire", "first", "five", "for",
	"former", "formerly", "forty", "found", "four", "from", "front", "full", "further", "get", "give", "go",
	"had", "has", "hasnt", "have", "he", "hence", "her", "here", "hereafter", "hereby", "herein", "hereupon",
	"hers", "herself", "him", "himself", "his", "how", "however", "hundred", "i", "ie", "if", "in", "inc",
	"indeed", "interest", "into", "is", "it", "its", "itself", "keep", "last", "latter", "latterly", "least",
	"less", "ltd", "made", "many", "may", "me", "meanwhile", "might", "mill", "mine", "more", "moreover",
	"most", "mostly", "move", "much", "must", "my", "myself", "name", "namely", "neither", "never",
	"nevertheless", "next", "nine", "no", "nobody", "none", "noone", "nor", "not", "nothing", "now", "nowhere",
	"of", "off", "often", "on", "once", "one", "only", "onto", "or", "other", "others", "otherwise", "our",
	"ours", "ourselves", "out", "over", "own", "part", "per", "perhaps", "please", "put", "rather", "re",
	"same", "see", "seem", "seemed", "seeming", "seems", "serious", "several", "she", "should", "show", "side",
	"since", "sincere", "six", "sixty", "so", "some", "somehow", "someone", "something", "sometime",
	"sometimes", "somewhere", "still", "such", "system", "take", "ten", "than", "that", "the", "their",
	"them", "themselves", "then", "thence", "there", "thereafter", "thereby", "therefore", "therein",
	"thereupon", "these", "they", "thick", "thin", "third", "this", "those", "though", "three", "through",
	"throughout", "thru", "thus", "to", "together", "too", "top", "toward", "towards", "twelve", "twenty",
	"two", "un", "under", "until", "up", "upon", "us", "very", "via", "was", "we", "well", "were", "what",
	"whatever", "when", "whence", "whenever", "where", "whereafter", "whereas", "whereby", "wherein",
	"whereupon", "wherever", "whether", "which", "while", "whither", "who", "whoever", "whole", "whom",
	"whose", "why", "will", "with", "within", "without", "would", "yet", "you", "your", "yours", "yourself",
	"yourselves"}
