//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

import "time"

const (
	MYNAME    = "Corpus Workshop"
	SHORTNAME = "CWS"
	VERSION   = "1.0.3"

	BLACKANDWHITE      = false
	CHARSPERDOC        = 1200 // used to preallocate text blocks; closer to a max than to a real average
	CONFIGLOCATION     = "."
	CONFIGALTAPTH      = "%s/.config/" // %s = os.UserHomeDir()
	CONFIGBASIC        = "cws-conf.json"
	CONFIGYAML         = "cws-conf.yaml"
	CONFIGSTOPSENGLISH = "cws-stops-english.json"
	CONFIGVECTORW2V    = "cws-vectors-w2v.json"
	CONFIGVECTORGLOVE  = "cws-vectors-glove.json"
	CONFIGVECTORLEXVEC = "cws-vectors-lexvec.json"
	DATAFOLDER         = "cws-data"
	OUTPUTFOLDER       = "cws-output"
	STOREFILE          = "cws-store.db"

	DEFAULTDATASET      = "sample"
	LESSONLIST          = "corpus,tokens,freq,pos,lemma,ngrams,concord,vectorise,lda,vis,docmap,embed"
	DEFAULTECHOLOGLEVEL = 0
	DEFAULTGOLOGLEVEL   = 0
	DEFAULTPSQLHOST     = "127.0.0.1"
	DEFAULTPSQLUSER     = "cws_rd"
	DEFAULTPSQLPORT     = 5432
	DEFAULTPSQLDB       = "corpusDB"
	DEFAULTPSQLQUERY    = "SELECT id, category, body FROM documents"
	SERVEDFROMHOST      = "127.0.0.1"
	SERVEDFROMPORT      = 8000
	SIMULTANEOUSQUERIES = 3 // cap on the number of db connections at (S * Config.WorkerCount)

	// the classic "by date" split of the twenty newsgroups collection
	NEWSGROUPSURL     = "https://ndownloader.figshare.com/files/5975967"
	NEWSGROUPSARCHIVE = "20news-bydate.tar.gz"
	NEWSGROUPSTRAIN   = "20news-bydate-train"
	NEWSGROUPSTEST    = "20news-bydate-test"
	NEWSGROUPSSUBSET  = "train"

	FETCHRATE    = 2.0 // requests per second when pulling a list of urls
	FETCHTIMEOUT = 90 * time.Second

	JSONINDENT = "  "
	WRITEPERMS = 0644
	DIRPERMS   = 0755

	MAXECHOREQPERSECONDPERIP = 60
	MAXDOCSPERCORPUS         = 20000
	MAXINPUTLEN              = 64
	UNACCEPTABLEINPUT        = `|"'!@:,=+_\/`
	USEGZIP                  = false
	TICKERISACTIVE           = false
	TIMEOUTRD                = 15 * time.Second
	TIMEOUTWR                = 120 * time.Second
	WSPOLLINGPAUSE           = 250 * time.Millisecond
)
