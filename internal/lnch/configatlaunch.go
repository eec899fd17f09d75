//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"text/template"

	"github.com/e-gun/CorpusWorkshop/internal/str"
	"github.com/e-gun/CorpusWorkshop/internal/vv"
	"gopkg.in/yaml.v3"
)

var (
	Config = BuildDefaultConfig()
	Msg    = NewMessageMakerWithDefaults()
)

// what ApplyArgs wants the caller to do once the switches are read
const (
	ACTRUN = iota
	ACTHELP
	ACTVERSION
	ACTFULLVERSION
)

var errMissingValue = errors.New("missing value for command line switch")

// ConfigAtLaunch - read the configuration values from JSON/YAML and then from the command line
func ConfigAtLaunch() {
	const (
		FAIL3 = `Could not parse the information in '%s'. Skipping and attempting to use built-in defaults instead.`
		FAIL5 = "Refusing to set a workercount greater than NumCPU: %d > %d ---> setting workercount value to NumCPU: %d"
		FAIL6 = "Could not parse the command line: %s"
		LOADD = "'%s'%s loaded"
	)

	args := os.Args[1:]

	cf := explicitconfigfile(args)
	if cf == "" {
		cf = FindConfigFile()
	}

	Config = BuildDefaultConfig()
	y := " *not*"
	if cf != "" {
		c, err := LoadConfigFile(cf, Config)
		if err != nil {
			Msg.CRIT(fmt.Sprintf(FAIL3, cf))
			Config = BuildDefaultConfig()
		} else {
			Config = c
			y = ""
		}
	}

	act, err := ApplyArgs(Config, args)
	if err != nil {
		Msg.CRIT(fmt.Sprintf(FAIL6, err.Error()))
		Msg.ExitOrHang(1)
	}

	UpdateMessageMakerWithConfig(Msg)

	switch act {
	case ACTHELP:
		PrintVersion(*Config)
		PrintBuildInfo(*Config)
		fmt.Println(HelpText(*Config))
		os.Exit(0)
	case ACTVERSION:
		fmt.Println(vv.VERSION + VersSuppl)
		os.Exit(0)
	case ACTFULLVERSION:
		PrintVersion(*Config)
		PrintBuildInfo(*Config)
		os.Exit(0)
	}

	Msg.TMI(fmt.Sprintf(LOADD, cf, y))

	if Config.WorkerCount > runtime.NumCPU() {
		Msg.CRIT(fmt.Sprintf(FAIL5, Config.WorkerCount, runtime.NumCPU(), runtime.NumCPU()))
		Config.WorkerCount = runtime.NumCPU()
	}
}

// BuildDefaultConfig - return a CurrentConfiguration filled out with various default values
func BuildDefaultConfig() *str.CurrentConfiguration {
	var c str.CurrentConfiguration
	c.BadChars = vv.UNACCEPTABLEINPUT
	c.BlackAndWhite = vv.BLACKANDWHITE
	c.ConcordKW = vv.CONCORDKEYWORD
	c.ConcordLines = vv.CONCORDLINES
	c.ConcordWidth = vv.CONCORDWIDTH
	c.DataDir = vv.DATAFOLDER
	c.Dataset = vv.DEFAULTDATASET
	c.EchoLog = vv.DEFAULTECHOLOGLEVEL
	c.Embeddings = false
	c.Gzip = vv.USEGZIP
	c.HostIP = vv.SERVEDFROMHOST
	c.HostPort = vv.SERVEDFROMPORT
	c.LdaIter = vv.LDAITER
	c.LdaSeed = vv.LDASEED
	c.LdaSentPerBag = vv.LDASENTPERBAG
	c.LdaTopics = vv.LDATOPICS
	c.Lessons = nil
	c.LogLevel = vv.DEFAULTGOLOGLEVEL
	c.ManualGC = false
	c.NewsgroupsURL = vv.NEWSGROUPSURL
	c.OutputDir = vv.OUTPUTFOLDER
	c.PGQuery = vv.DEFAULTPSQLQUERY
	c.ProfileCPU = false
	c.ProfileMEM = false
	c.QuietStart = false
	c.Serve = false
	c.StoreFile = filepath.Join(vv.DATAFOLDER, vv.STOREFILE)
	c.Subset = vv.NEWSGROUPSSUBSET
	c.TickerActive = vv.TICKERISACTIVE
	c.VecMaxDF = vv.VECMAXDF
	c.VecMaxFeat = vv.VECMAXFEATURES
	c.VecMinDF = vv.VECMINDF
	c.VecWeighting = vv.VECWEIGHTING
	c.VisLambda = vv.VISLAMBDA
	c.VisTerms = vv.VISRELEVANTTERMS
	c.VectorChtHt = vv.DEFAULTCHRTHEIGHT
	c.VectorChtWd = vv.DEFAULTCHRTWIDTH
	c.VectorNeighb = vv.VECTORNEIGHBORS
	c.WorkerCount = runtime.NumCPU()

	c.PGLogin = str.PostgresLogin{
		Host:   vv.DEFAULTPSQLHOST,
		Port:   vv.DEFAULTPSQLPORT,
		User:   vv.DEFAULTPSQLUSER,
		Pass:   "",
		DBName: vv.DEFAULTPSQLDB,
	}

	return &c
}

// FindConfigFile - "./cws-conf.json", then "~/.config/cws-conf.json", then the yaml versions of the same; "" if none
func FindConfigFile() string {
	var candidates []string
	for _, f := range []string{vv.CONFIGBASIC, vv.CONFIGYAML} {
		candidates = append(candidates, filepath.Join(vv.CONFIGLOCATION, f))
	}

	if uh, err := os.UserHomeDir(); err == nil {
		h := fmt.Sprintf(vv.CONFIGALTAPTH, uh)
		for _, f := range []string{vv.CONFIGBASIC, vv.CONFIGYAML} {
			candidates = append(candidates, filepath.Join(h, f))
		}
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// LoadConfigFile - overlay the contents of a JSON or YAML file on top of base; base itself is not modified
func LoadConfigFile(fn string, base *str.CurrentConfiguration) (*str.CurrentConfiguration, error) {
	b, err := os.ReadFile(fn)
	if err != nil {
		return nil, err
	}

	c := *base
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &c)
	default:
		err = json.Unmarshal(b, &c)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return &c, nil
}

func explicitconfigfile(args []string) string {
	for i, a := range args {
		if a == "-c" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

// ApplyArgs - modify cfg according to the command line switches
func ApplyArgs(cfg *str.CurrentConfiguration, args []string) (int, error) {
	const (
		FAIL1 = "Could not parse your information as a valid collection of credentials. Use the following template:"
		FAIL2 = `"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"corpusDB\" ,\"User\": \"cws_rd\"}"`
	)

	act := ACTRUN

	next := func(i int) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%w: %s", errMissingValue, args[i])
		}
		return args[i+1], nil
	}

	nextint := func(i int) (int, error) {
		s, err := next(i)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", args[i], err)
		}
		return n, nil
	}

	nextfloat := func(i int) (float64, error) {
		s, err := next(i)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", args[i], err)
		}
		return f, nil
	}

	list := func(s string) []string {
		var out []string
		for _, x := range strings.Split(s, ",") {
			if x = strings.TrimSpace(x); x != "" {
				out = append(out, x)
			}
		}
		return out
	}

	var err error
	var s string
	for i, a := range args {
		switch a {
		case "-vv":
			act = ACTFULLVERSION
		case "-v":
			act = ACTVERSION
		case "-h":
			act = ACTHELP
		case "-bw":
			cfg.BlackAndWhite = true
		case "-c":
			// handled by explicitconfigfile()
			_, err = next(i)
		case "-cat":
			s, err = next(i)
			cfg.Categories = list(s)
		case "-dd":
			cfg.DataDir, err = next(i)
		case "-ds":
			cfg.Dataset, err = next(i)
		case "-el":
			cfg.EchoLog, err = nextint(i)
		case "-em":
			cfg.Embeddings = true
		case "-ex":
			s, err = next(i)
			cfg.Lessons = list(s)
		case "-gl":
			cfg.LogLevel, err = nextint(i)
		case "-gz":
			cfg.Gzip = true
		case "-it":
			cfg.LdaIter, err = nextint(i)
		case "-kw":
			cfg.ConcordKW, err = next(i)
		case "-la":
			cfg.VisLambda, err = nextfloat(i)
			if err == nil && (cfg.VisLambda < 0 || cfg.VisLambda > 1) {
				err = fmt.Errorf("-la must be between 0 and 1: %f", cfg.VisLambda)
			}
		case "-mf":
			cfg.VecMaxFeat, err = nextint(i)
		case "-nd":
			cfg.VecMinDF, err = nextint(i)
		case "-nt":
			cfg.LdaTopics, err = nextint(i)
			if err == nil && (cfg.LdaTopics < 1 || cfg.LdaTopics > vv.LDAMAXTOPICS) {
				err = fmt.Errorf("-nt must be between 1 and %d: %d", vv.LDAMAXTOPICS, cfg.LdaTopics)
			}
		case "-od":
			cfg.OutputDir, err = next(i)
		case "-pc":
			cfg.ProfileCPU = true
		case "-pg":
			s, err = next(i)
			if err == nil {
				var pl str.PostgresLogin
				if e := json.Unmarshal([]byte(s), &pl); e != nil {
					Msg.MAND(FAIL1)
					Msg.CRIT(FAIL2)
					err = fmt.Errorf("-pg: %w", e)
				} else {
					cfg.PGLogin = pl
				}
			}
		case "-pm":
			cfg.ProfileMEM = true
		case "-pq":
			cfg.PGQuery, err = next(i)
		case "-q":
			cfg.QuietStart = true
		case "-sa":
			cfg.HostIP, err = next(i)
		case "-sb":
			cfg.Subset, err = next(i)
		case "-sd":
			cfg.LdaSeed, err = nextint(i)
		case "-sp":
			cfg.HostPort, err = nextint(i)
		case "-sq":
			cfg.StoreFile, err = next(i)
		case "-sv":
			cfg.Serve = true
		case "-tk":
			cfg.TickerActive = true
		case "-wc":
			cfg.WorkerCount, err = nextint(i)
		case "-wt":
			cfg.VecWeighting, err = next(i)
			if err == nil && cfg.VecWeighting != "count" && cfg.VecWeighting != "tfidf" {
				err = fmt.Errorf("-wt must be 'count' or 'tfidf': %s", cfg.VecWeighting)
			}
		case "-xd":
			cfg.VecMaxDF, err = nextfloat(i)
		default:
			// do nothing
		}
		if err != nil {
			return act, err
		}
	}
	return act, nil
}

// HelpText - the colorized help template filled out with the current configuration
func HelpText(cfg str.CurrentConfiguration) string {
	const (
		FAIL7 = "HelpText() failed to execute help text template"
	)

	uh, _ := os.UserHomeDir()
	h := fmt.Sprintf(vv.CONFIGALTAPTH, uh)

	m := map[string]interface{}{
		"conffile":  vv.CONFIGBASIC,
		"confyaml":  vv.CONFIGYAML,
		"cpus":      runtime.NumCPU(),
		"cwsll":     cfg.LogLevel,
		"datadir":   cfg.DataDir,
		"dataset":   cfg.Dataset,
		"echoll":    cfg.EchoLog,
		"home":      h,
		"host":      cfg.HostIP,
		"iter":      cfg.LdaIter,
		"keyword":   cfg.ConcordKW,
		"lambda":    cfg.VisLambda,
		"lessons":   strings.ReplaceAll(vv.LESSONLIST, ",", "C0, C3"),
		"maxdf":     cfg.VecMaxDF,
		"maxfeat":   cfg.VecMaxFeat,
		"mindf":     cfg.VecMinDF,
		"outdir":    cfg.OutputDir,
		"pgquery":   cfg.PGQuery,
		"port":      cfg.HostPort,
		"projurl":   vv.PROJURL,
		"seed":      cfg.LdaSeed,
		"store":     cfg.StoreFile,
		"subset":    cfg.Subset,
		"topics":    cfg.LdaTopics,
		"weighting": cfg.VecWeighting,
		"workers":   cfg.WorkerCount,
	}

	t := template.Must(template.New("").Parse(vv.HELPTEXTTEMPLATE))

	var b bytes.Buffer
	if ee := t.Execute(&b, m); ee != nil {
		Msg.CRIT(FAIL7)
	}
	return Msg.Styled(Msg.Color(b.String()))
}
