// Command calconv converts dates between calendars and decodes moment keys.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chrissnell/univtime/internal/log"
	"github.com/chrissnell/univtime/pkg/epoch"
	"github.com/chrissnell/univtime/pkg/moment"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "calconv: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("calconv", flag.ContinueOnError)
	fs.SetOutput(out)
	from := fs.String("from", "gregorian", "Calendar of -date: gregorian, julian, hebrew, chinese")
	to := fs.String("to", "all", "Comma-separated target calendars, or 'all'")
	date := fs.String("date", "", "Date to convert (y-m-d, or cycle-year-month[L]-day for chinese)")
	key := fs.String("key", "", "Moment key to decode")
	geo := fs.String("geo", "", "Years ago to place on the geologic time scale")
	debug := fs.Bool("debug", false, "Turn on debugging output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := log.Init(*debug); err != nil {
		return err
	}
	defer log.Sync()

	p := message.NewPrinter(language.English)

	switch {
	case *key != "":
		return explainKey(p, out, *key)
	case *geo != "":
		d, err := moment.ParseDate(moment.Geological, *geo)
		if err != nil {
			return err
		}
		return convert(p, out, d, *to)
	case *date != "":
		cal, err := moment.ParseCalendar(*from)
		if err != nil {
			return err
		}
		d, err := moment.ParseDate(cal, *date)
		if err != nil {
			return err
		}
		return convert(p, out, d, *to)
	}
	fs.Usage()
	return fmt.Errorf("one of -date, -key or -geo is required")
}

func targets(list string) ([]moment.Calendar, error) {
	if list == "" || list == "all" {
		return moment.Calendars(), nil
	}
	var cals []moment.Calendar
	for _, name := range strings.Split(list, ",") {
		c, err := moment.ParseCalendar(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		cals = append(cals, c)
	}
	return cals, nil
}

func convert(p *message.Printer, out io.Writer, d moment.Date, to string) error {
	cals, err := targets(to)
	if err != nil {
		return err
	}
	rd, err := moment.Fixed(d)
	if err != nil {
		return err
	}
	log.Debugw("converting", "calendar", d.Calendar().String(), "date", d.String(), "rd", rd)

	p.Fprintf(out, "%-11s %s\n", d.Calendar().String()+":", d.String())
	p.Fprintf(out, "%-11s %d (%s)\n", "R.D.:", rd, epoch.DayName(rd))
	for _, cal := range cals {
		if cal == d.Calendar() {
			continue
		}
		c, err := moment.Convert(d, cal)
		if err != nil {
			p.Fprintf(out, "%-11s %v\n", cal.String()+":", err)
			continue
		}
		p.Fprintf(out, "%-11s %s\n", cal.String()+":", c.String())
		if g, ok := c.(moment.GeologicalDate); ok {
			printPlacement(p, out, g)
		}
	}
	if g, ok := d.(moment.GeologicalDate); ok {
		printPlacement(p, out, g)
	}

	if m, err := moment.FromDate(d); err == nil {
		p.Fprintf(out, "%-11s %s\n", "key:", m.Key())
	}
	return nil
}

func printPlacement(p *message.Printer, out io.Writer, g moment.GeologicalDate) {
	years, _ := g.YearsAgo.Float64()
	pl := g.Placement()
	p.Fprintf(out, "%-11s %.0f years ago: %s / %s / %s / %s\n", "placement:", years, pl.Eon, pl.Era, pl.Period, pl.Epoch)
}

func explainKey(p *message.Printer, out io.Writer, key string) error {
	m, err := moment.ParseKey(key)
	if err != nil {
		return err
	}
	p.Fprintf(out, "%-11s %s\n", "moment:", m.String())
	p.Fprintf(out, "%-11s %s\n", "precision:", m.Precision().String())
	for _, cal := range moment.Calendars() {
		v, err := m.In(cal)
		if err != nil {
			p.Fprintf(out, "%-11s %v\n", cal.String()+":", err)
			continue
		}
		p.Fprintf(out, "%-11s %s\n", cal.String()+":", v.String())
	}
	return nil
}
