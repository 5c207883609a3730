package main

import (
	"bufio"
	"flag"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/KENZY004/contact-management/internal/config"
	"github.com/KENZY004/contact-management/internal/logging"
	"github.com/KENZY004/contact-management/internal/repository"
)

// Usage example on the command line:
// > DBHOST=localhost DBUSER=contacts DBPWD=secret go run main.go -file=../../scripts/database.sql
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("INFO")
		logging.Fatal("could not load configuration", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	sqlDB, err := repository.OpenMySQL(cfg.MySQLDSN())
	if err != nil {
		logging.Fatal("could not open database", "error", err)
	}
	db := sqlx.NewDb(sqlDB, "mysql")
	defer db.Close()

	filePtr := flag.String("file", "database.sql", "the sql file to execute")
	flag.Parse()

	readFile, err := os.Open(*filePtr)
	if err != nil {
		logging.Fatal("could not open sql file", "file", *filePtr, "error", err)
	}
	defer readFile.Close()

	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	for fileScanner.Scan() {
		line := fileScanner.Text()
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			sql := builder.String()
			db.MustExec(sql)
			builder = strings.Builder{}
		}
	}
}
