/*
Package brfss appends and harmonizes annual BRFSS survey data files.

The Behavioral Risk Factor Surveillance System releases one data file per
survey year.  Variable names and coding schemes drift across years: the
household income question was INCOME2 with 8 response categories through
2021 and INCOME3 with 11 categories afterward, the respondent sex variable
has been SEX, SEX1, and _SEX in different eras, and so on.  This package
stacks the annual files into one table and applies a year-range-keyed rule
table that maps each era's variable onto a single consistent coding.

The pipeline has two stages.  A Loader reads one CSV file per requested
year, tags every record with a surveyyear column, and concatenates the
years into a single Table whose schema is the union of the per-year
schemas.  A Harmonizer then evaluates a validated RuleSet against that
table, recoding sentinel "don't know"/"refused" codes to missing before
any value mapping or derivation runs, and passes the survey-design fields
(final weight, stratum, primary sampling unit) through untouched for
downstream weighted estimation.

Data is held in column-oriented Series values carrying an explicit
missing-value mask, and results can be written as CSV or parquet files
for consumption by external statistical tooling.
*/
package brfss
