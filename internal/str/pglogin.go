//    CorpusWorkshop
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

type PostgresLogin struct {
	Host   string `json:"Host" yaml:"host"`
	Port   int    `json:"Port" yaml:"port"`
	User   string `json:"User" yaml:"user"`
	Pass   string `json:"Pass" yaml:"pass"`
	DBName string `json:"DBName" yaml:"dbname"`
}
