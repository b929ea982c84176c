// This file is part of seaforth - https://github.com/dbz47h/seaforth
//
// Copyright 2024 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package forth

// registerCompilerPrimitives wires the runtime helper XTs the
// structured-control compiler (compile.go), the exception words
// (except.go), the pictured-numeric-output words (pictured.go) and the
// locals facility (locals.go) all depend on, then installs their
// user-visible words. The helpers are registered like any other word,
// mostly under non-standard names such as (LIT) and (DO).
func (d *Dictionary) registerCompilerPrimitives(reg registrar) {
	d.xtLit = reg("(LIT)", false, litRuntime)
	d.xtTwoLit = reg("(2LIT)", false, twoLitRuntime)
	d.xtSLit = reg("(SLIT)", false, sliteralRuntime)
	d.xtBranch = reg("BRANCH", false, branchRuntime)
	d.xtZeroBranch = reg("0BRANCH", false, zeroBranchRuntime)
	d.xtDoRT = reg("(DO)", false, doRuntime)
	d.xtQDoRT = reg("(?DO)", false, qDoRuntime)
	d.xtLoopRT = reg("(LOOP)", false, loopRuntime)
	d.xtPlusLoopRT = reg("(+LOOP)", false, plusLoopRuntime)
	d.xtDoesRuntime = reg("(DOES>)", false, doesRuntime)
	d.xtCompileComma = reg("COMPILE,", false, compileCommaWord)
	d.xtExit = reg("EXIT", false, exitWord)
	d.xtAbortQuoteRT = reg("(ABORT\")", false, abortQuoteRuntime)

	reg("I", false, iWord)
	reg("J", false, jWord)
	reg("UNLOOP", false, unloopWord)
	reg("LEAVE", false, leaveWord)

	reg("IF", true, ifWord)
	reg("ELSE", true, elseWord)
	reg("THEN", true, thenWord)
	reg("BEGIN", true, beginWord)
	reg("AGAIN", true, againWord)
	reg("UNTIL", true, untilWord)
	reg("WHILE", true, whileWord)
	reg("REPEAT", true, repeatWord)
	reg("DO", true, doWord)
	reg("?DO", true, qDoWord)
	reg("LOOP", true, loopWord)
	reg("+LOOP", true, plusLoopWord)
	reg("CASE", true, caseWord)
	reg("OF", true, ofWord)
	reg("ENDOF", true, endofWord)
	reg("ENDCASE", true, endcaseWord)

	reg(":", false, colonWord)
	reg(":NONAME", false, colonNonameWord)
	reg(";", true, semiWord)
	reg("CREATE", false, createWord)
	reg("DOES>", true, doesWord)
	reg("RECURSE", true, recurseWord)
	reg("POSTPONE", true, postponeWord)
	reg("'", false, tickWord)
	reg("[']", true, bracketTickWord)
	reg("EXECUTE", false, executeWord)
	reg("LITERAL", true, literalWord)
	reg("2LITERAL", true, twoLiteralWord)
	reg("SLITERAL", true, sliteralWord)
	reg("S\"", true, sQuoteWord)
	reg(".\"", true, dotQuoteWord)
	reg("IMMEDIATE", false, immediateWord)
	reg("VARIABLE", false, variableWord)
	reg("CONSTANT", false, constantWord)
	reg("DEFER", false, deferWord)
	reg("IS", false, isWord)

	reg("<#", false, lessNumberSignWord)
	reg("#", false, numberSignWord)
	reg("#S", false, numberSignSWord)
	reg("SIGN", false, signWord)
	reg("HOLD", false, holdWord)
	reg("#>", false, greaterNumberSignWord)

	reg("CATCH", false, catchWord)
	reg("THROW", false, throwWord)
	reg("ABORT", false, abortWord)
	reg("ABORT\"", true, abortQuoteWord)
	reg("QUIT", false, quitWord)
	reg("BYE", false, byeWord)

	d.xtLocalsEnter = reg("(LOCALS-ENTER)", false, localsEnterRuntime)
	d.xtLocalsExit = reg("(LOCALS-EXIT)", false, localsExitRuntime)
	reg("{:", true, localsBraceWord)
	reg("LOCALS|", true, localsBarWord)
	reg("TO", true, toWord)
}
