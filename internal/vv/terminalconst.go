//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	MINCONFIG = `
{"Dataset": "newsgroups", "LdaTopics": 10, "OutputDir": "cws-output"}
`

	TERMINALTEXT = `Copyright (C) %s / %s
      %s

      This program comes with ABSOLUTELY NO WARRANTY; without even the  
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.

      This is free software, and you are welcome to redistribute it and/or 
      modify it under the terms of the GNU General Public License version 3.`

	PROJYEAR = "2022-24"
	PROJAUTH = "E. Gunderson"
	PROJURL  = "https://github.com/e-gun/CorpusWorkshop"

	HELPTEXTTEMPLATE = `S3command line optionsS0:
   C1-bwC0          disable color output in the console
   C1-cC0 C2{file}C0    read the configuration from this file instead of "C3{{.home}}{{.conffile}}C0"
   C1-catC0 C2{a,b}C0   only use these categories of the dataset (comma separated)
   C1-ddC0 C2{dir}C0    data and download cache folder [C6currentC0: C3{{.datadir}}C0]
   C1-dsC0 C2{name}C0   dataset: C3sampleC0, C3newsgroupsC0, C3dir:/some/pathC0, C3url:http://a,http://bC0, C3pgC0 [C6currentC0: C3{{.dataset}}C0]
   C1-elC0 C2{num}C0    set echo server log level (C10-3C0) [C6currentC0: C3{{.echoll}}C0]
   C1-emC0          enable the word embeddings lesson (slow)
   C1-exC0 C2{name}C0   run only these lessons (comma separated); available: C3{{.lessons}}C0
   C1-glC0 C2{num}C0    set golang log level (C10-5C0) [C6currentC0: C3{{.cwsll}}C0]
   C1-gzC0          enable gzip compression of the server's output
   C1-hC0           print this help information
   C1-itC0 C2{num}C0    LDA iterations [C6currentC0: C3{{.iter}}C0]
   C1-kwC0 C2{word}C0   concordance keyword [C6currentC0: C3{{.keyword}}C0]
   C1-laC0 C2{num}C0    relevance lambda for the topic visualisation (C10-1C0) [C6currentC0: C3{{.lambda}}C0]
   C1-mfC0 C2{num}C0    maximum number of features kept by the vectoriser [C6currentC0: C3{{.maxfeat}}C0]
   C1-ndC0 C2{num}C0    minimum document frequency of a term [C6currentC0: C3{{.mindf}}C0]
   C1-ntC0 C2{num}C0    number of LDA topics [C6currentC0: C3{{.topics}}C0]
   C1-odC0 C2{dir}C0    folder for the html charts [C6currentC0: C3{{.outdir}}C0]
   C1-pcC0          enable CPU profiling run
   C1-pgC0 C2{string}C0 supply full PostgreSQL credentials C4(*)C0
   C1-pmC0          enable MEM profiling run
   C1-pqC0 C2{string}C0 query that yields C3id, category, bodyC0 rows [C6currentC0: C3{{.pgquery}}C0]
   C1-qC0           quiet startup: suppress copyright notice
   C1-saC0 C2{string}C0 server IP address [C6currentC0: C3{{.host}}C0]
   C1-sdC0 C2{num}C0    random seed [C6currentC0: C3{{.seed}}C0]
   C1-spC0 C2{num}C0    server port [C6currentC0: C3{{.port}}C0]
   C1-sqC0 C2{file}C0   sqlite store [C6currentC0: C3{{.store}}C0]
   C1-sbC0 C2{name}C0   newsgroups subset: C3trainC0, C3testC0, C3allC0 [C6currentC0: C3{{.subset}}C0]
   C1-svC0          serve the workshop over http instead of printing the lessons
   C1-tkC0          show a ticker with server stats in the terminal
   C1-vC0           print version info and exit
   C1-vvC0          print full version info and exit
   C1-wcC0 C2{int}C0    number of workers [C1cpu_countC0 is C3{{.cpus}}C0][C6currentC0: C3{{.workers}}C0]
   C1-wtC0 C2{string}C0 term weighting: C3countC0 or C3tfidfC0 [C6currentC0: C3{{.weighting}}C0]
   C1-xdC0 C2{num}C0    maximum document frequency as a proportion [C6currentC0: C3{{.maxdf}}C0]
     (*) S3exampleS0: 
         C4"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"corpusDB\" ,\"User\": \"cws_rd\"}"C0
     
     S1NB:S0 a properly formatted version of "C3{{.conffile}}C0" in "C3{{.home}}C0" configures everything for you. 
         JSON and YAML ("C3{{.confyaml}}C0") are both accepted. See the sample configuration files at
             C3{{.projurl}}C0
`
)
