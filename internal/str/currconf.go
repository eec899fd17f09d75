//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type CurrentConfiguration struct {
	BadChars      string        `json:"BadChars" yaml:"badchars"`
	BlackAndWhite bool          `json:"BlackAndWhite" yaml:"blackandwhite"`
	Categories    []string      `json:"Categories" yaml:"categories"`
	ConcordKW     string        `json:"ConcordKW" yaml:"concordkw"`
	ConcordLines  int           `json:"ConcordLines" yaml:"concordlines"`
	ConcordWidth  int           `json:"ConcordWidth" yaml:"concordwidth"`
	DataDir       string        `json:"DataDir" yaml:"datadir"`
	Dataset       string        `json:"Dataset" yaml:"dataset"`
	EchoLog       int           `json:"EchoLog" yaml:"echolog"` // 0: "none", 1: "terse", 2: "prolix", 3: "prolix+remoteip"
	Embeddings    bool          `json:"Embeddings" yaml:"embeddings"`
	Gzip          bool          `json:"Gzip" yaml:"gzip"`
	HostIP        string        `json:"HostIP" yaml:"hostip"`
	HostPort      int           `json:"HostPort" yaml:"hostport"`
	LdaIter       int           `json:"LdaIter" yaml:"ldaiter"`
	LdaSeed       int           `json:"LdaSeed" yaml:"ldaseed"`
	LdaTopics     int           `json:"LdaTopics" yaml:"ldatopics"`
	LdaSentPerBag int           `json:"LdaSentPerBag" yaml:"ldasentperbag"`
	Lessons       []string      `json:"Lessons" yaml:"lessons"`
	LogLevel      int           `json:"LogLevel" yaml:"loglevel"`
	ManualGC      bool          `json:"ManualGC" yaml:"manualgc"` // see Msg.LogPaths()
	NewsgroupsURL string        `json:"NewsgroupsURL" yaml:"newsgroupsurl"`
	OutputDir     string        `json:"OutputDir" yaml:"outputdir"`
	PGLogin       PostgresLogin `json:"PGLogin" yaml:"pglogin"`
	PGQuery       string        `json:"PGQuery" yaml:"pgquery"`
	ProfileCPU    bool          `json:"ProfileCPU" yaml:"profilecpu"`
	ProfileMEM    bool          `json:"ProfileMEM" yaml:"profilemem"`
	QuietStart    bool          `json:"QuietStart" yaml:"quietstart"`
	Serve         bool          `json:"Serve" yaml:"serve"`
	StoreFile     string        `json:"StoreFile" yaml:"storefile"`
	TickerActive  bool          `json:"TickerActive" yaml:"tickeractive"`
	Subset        string        `json:"Subset" yaml:"subset"`
	VecMaxDF      float64       `json:"VecMaxDF" yaml:"vecmaxdf"`
	VecMaxFeat    int           `json:"VecMaxFeat" yaml:"vecmaxfeat"`
	VecMinDF      int           `json:"VecMinDF" yaml:"vecmindf"`
	VecWeighting  string        `json:"VecWeighting" yaml:"vecweighting"`
	VisLambda     float64       `json:"VisLambda" yaml:"vislambda"`
	VisTerms      int           `json:"VisTerms" yaml:"visterms"`
	VectorChtHt   string        `json:"VectorChtHt" yaml:"vectorchtht"`
	VectorChtWd   string        `json:"VectorChtWd" yaml:"vectorchtwd"`
	VectorNeighb  int           `json:"VectorNeighb" yaml:"vectorneighb"`
	WorkerCount   int           `json:"WorkerCount" yaml:"workercount"`
}
